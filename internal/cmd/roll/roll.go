// Package roll parses roll command flags and answers roll requests locally.
package roll

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/dicebot/internal/core/dice"
	entrypoint "github.com/louisbranch/dicebot/internal/platform/cmd"
	"github.com/louisbranch/dicebot/internal/services/roller"
)

// Config holds roll command configuration.
type Config struct {
	roller.Config
	Coin        bool
	Stdin       bool
	Expressions []string
}

// ParseConfig parses environment and flags into a Config. Positional
// arguments become the expressions to roll.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	bindLimitFlags(fs, &cfg.Config)
	fs.BoolVar(&cfg.Coin, "coin", false, "flip a coin instead of rolling")
	fs.BoolVar(&cfg.Stdin, "stdin", false, "read one command per line from stdin (roll, coin, help)")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	cfg.Expressions = fs.Args()
	return cfg, nil
}

// bindLimitFlags registers the limit flags. Environment values are loaded
// after registration, so only explicitly set flags override them.
func bindLimitFlags(fs *flag.FlagSet, cfg *roller.Config) {
	fs.IntVar(&cfg.MaxRolls, "max-rolls", dice.DefaultMaxRolls, "maximum expressions rolled per call")
	fs.IntVar(&cfg.MaxRollSize, "max-roll-size", dice.DefaultMaxRollSize, "maximum dice per expression")
	fs.IntVar(&cfg.MaxDieSize, "max-die-size", dice.DefaultMaxDieSize, "maximum sides per die")
}

// Run answers the configured request on stdout.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, os.Stdin, os.Stdout)
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	service, err := roller.NewService(roller.WithLimits(cfg.Limits()))
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		switch {
		case cfg.Stdin:
			return serveLines(ctx, service, in, out)
		case cfg.Coin:
			_, err := fmt.Fprintln(out, service.Flip(ctx))
			return err
		default:
			reply, err := service.Roll(ctx, cfg.Expressions)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, reply.Text())
			return err
		}
	})
}

// serveLines answers one command per input line until EOF or cancellation.
// Unknown commands are ignored, like a chat bot ignoring unrelated messages.
// Lines are read on a separate goroutine so a pending read never blocks
// shutdown.
func serveLines(ctx context.Context, service *roller.Service, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read commands: %w", err)
				}
				return nil
			}
			reply, handled, err := service.Handle(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if !handled {
				continue
			}
			if _, err := fmt.Fprintln(out, reply); err != nil {
				return err
			}
		}
	}
}
