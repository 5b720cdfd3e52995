package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/dicebot/internal/services/roller"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvocationIDMetaKey is the result metadata key carrying the roll invocation id.
const InvocationIDMetaKey = "invocation_id"

// Roller is the roll service surface used by the MCP tools.
type Roller interface {
	Roll(ctx context.Context, expressions []string) (roller.Reply, error)
	Flip(ctx context.Context) string
}

// DiceRollInput represents the MCP tool input for rolling dice expressions.
type DiceRollInput struct {
	Expressions []string `json:"expressions" jsonschema:"dice expressions in <count>d<size> notation, e.g. 5d6"`
}

// DiceRollResult represents the MCP tool output for rolling dice expressions.
type DiceRollResult struct {
	Lines []string `json:"lines" jsonschema:"one formatted result line per rolled expression"`
	Total int      `json:"total" jsonschema:"sum of every die rolled"`
	Text  string   `json:"text" jsonschema:"chat-ready reply, or a usage hint when nothing was rolled"`
	Empty bool     `json:"empty" jsonschema:"whether no expression produced a roll"`
}

// CoinFlipInput represents the MCP tool input for a coin flip.
type CoinFlipInput struct{}

// CoinFlipResult represents the MCP tool output for a coin flip.
type CoinFlipResult struct {
	Result string `json:"result" jsonschema:"Heads! or Tails!"`
}

// DiceRollTool defines the MCP tool schema for rolling dice expressions.
func DiceRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_roll",
		Description: "Rolls dice written in <count>d<size> notation; invalid or oversized expressions are skipped",
	}
}

// CoinFlipTool defines the MCP tool schema for flipping a coin.
func CoinFlipTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "coin_flip",
		Description: "Flips a coin",
	}
}

// DiceRollHandler rolls the requested expressions.
func DiceRollHandler(service Roller) mcp.ToolHandlerFor[DiceRollInput, DiceRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiceRollInput) (*mcp.CallToolResult, DiceRollResult, error) {
		reply, err := service.Roll(ctx, input.Expressions)
		if err != nil {
			return nil, DiceRollResult{}, fmt.Errorf("dice roll failed: %w", err)
		}

		lines := reply.Lines
		if lines == nil {
			lines = []string{}
		}
		result := DiceRollResult{
			Lines: lines,
			Total: reply.Total,
			Text:  reply.Text(),
			Empty: reply.Empty(),
		}
		return &mcp.CallToolResult{
			Meta: map[string]any{InvocationIDMetaKey: reply.InvocationID},
		}, result, nil
	}
}

// CoinFlipHandler flips a coin.
func CoinFlipHandler(service Roller) mcp.ToolHandlerFor[CoinFlipInput, CoinFlipResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CoinFlipInput) (*mcp.CallToolResult, CoinFlipResult, error) {
		return nil, CoinFlipResult{Result: service.Flip(ctx)}, nil
	}
}
