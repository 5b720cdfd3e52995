// Package domain translates MCP tool calls into roll service calls.
//
// Each tool has a schema constructor and a handler constructor; handlers
// return structured outputs that MCP clients can render directly.
package domain
