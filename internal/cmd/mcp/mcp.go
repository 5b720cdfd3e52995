// Package mcp parses MCP command flags and starts the dice tool server.
package mcp

import (
	"context"
	"flag"

	"github.com/louisbranch/dicebot/internal/core/dice"
	entrypoint "github.com/louisbranch/dicebot/internal/platform/cmd"
	mcpservice "github.com/louisbranch/dicebot/internal/services/mcp/service"
	"github.com/louisbranch/dicebot/internal/services/roller"
)

// Config holds MCP command configuration.
type Config struct {
	roller.Config
	MCP mcpservice.Config
}

// ParseConfig parses environment and flags into a Config. Environment values
// are loaded after the flags are registered, so only explicitly set flags
// override them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.Var(&cfg.MCP.Transport, "transport", "Transport type: stdio or http")
	fs.StringVar(&cfg.MCP.HTTPAddr, "http-addr", "", "HTTP server address (for HTTP transport)")
	fs.IntVar(&cfg.MaxRolls, "max-rolls", dice.DefaultMaxRolls, "maximum expressions rolled per call")
	fs.IntVar(&cfg.MaxRollSize, "max-roll-size", dice.DefaultMaxRollSize, "maximum dice per expression")
	fs.IntVar(&cfg.MaxDieSize, "max-die-size", dice.DefaultMaxDieSize, "maximum sides per die")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	service, err := roller.NewService(roller.WithLimits(cfg.Limits()))
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, cfg.MCP, service)
	})
}
