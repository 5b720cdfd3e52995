// Package timeouts defines shared timeout constants used by the dice services.
package timeouts

import "time"

// ReadHeader limits how long the MCP HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the MCP HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long span export may take when a command exits.
const TelemetryShutdown = 5 * time.Second
