package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/dicebot/internal/core/dice"
	"github.com/louisbranch/dicebot/internal/services/mcp/domain"
	"github.com/louisbranch/dicebot/internal/services/roller"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestRoller(t *testing.T) *roller.Service {
	t.Helper()

	svc, err := roller.NewService(
		roller.WithSource(rand.New(rand.NewSource(3))),
		roller.WithLimits(dice.Limits{MaxRolls: 3, MaxRollSize: 10, MaxDieSize: 100}),
		roller.WithLogger(func(string, ...any) {}),
	)
	if err != nil {
		t.Fatalf("new roll service: %v", err)
	}
	return svc
}

// connectClient serves s over an in-memory transport and returns a client session.
func connectClient(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

func TestNewServerRequiresRoller(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Fatal("expected error for missing roll service")
	}
}

func TestListTools(t *testing.T) {
	server, err := NewServer(newTestRoller(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"dice_roll", "coin_flip"} {
		if !names[want] {
			t.Fatalf("tool %q not registered, got %v", want, names)
		}
	}
}

func TestDiceRollTool(t *testing.T) {
	server, err := NewServer(newTestRoller(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "dice_roll",
		Arguments: map[string]any{
			"expressions": []string{"2d6", "bogus", "11d6", "1D20"},
		},
	})
	if err != nil {
		t.Fatalf("call dice_roll: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("dice_roll failed: %+v", result)
	}

	output := decodeStructuredContent[domain.DiceRollResult](t, result.StructuredContent)
	if output.Empty {
		t.Fatal("expected rolled output")
	}
	if len(output.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", output.Lines)
	}
	if !strings.HasPrefix(output.Lines[0], "2d6: [") || !strings.HasPrefix(output.Lines[1], "1D20: [") {
		t.Fatalf("unexpected lines %q", output.Lines)
	}
	if !strings.HasPrefix(output.Text, "```") {
		t.Fatalf("expected literal block text, got %q", output.Text)
	}
	if id, _ := result.Meta[domain.InvocationIDMetaKey].(string); len(id) != 26 {
		t.Fatalf("expected invocation id in result metadata, got %v", result.Meta)
	}
}

func TestDiceRollToolEmpty(t *testing.T) {
	server, err := NewServer(newTestRoller(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dice_roll",
		Arguments: map[string]any{"expressions": []string{"1d1", "nope"}},
	})
	if err != nil {
		t.Fatalf("call dice_roll: %v", err)
	}
	if result.IsError {
		t.Fatalf("empty roll should not be a tool error: %+v", result.Content)
	}

	output := decodeStructuredContent[domain.DiceRollResult](t, result.StructuredContent)
	if !output.Empty || len(output.Lines) != 0 {
		t.Fatalf("expected empty output, got %+v", output)
	}
	if !strings.Contains(output.Text, "cannot have more than 10 dice") {
		t.Fatalf("expected usage message, got %q", output.Text)
	}
}

func TestCoinFlipTool(t *testing.T) {
	server, err := NewServer(newTestRoller(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "coin_flip",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call coin_flip: %v", err)
	}
	output := decodeStructuredContent[domain.CoinFlipResult](t, result.StructuredContent)
	if output.Result != roller.CoinHeads && output.Result != roller.CoinTails {
		t.Fatalf("unexpected coin face %q", output.Result)
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"}, newTestRoller(t))
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestServeHTTPStopsOnCancel(t *testing.T) {
	server, err := NewServer(newTestRoller(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ServeHTTP(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeHTTP returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ServeHTTP did not stop after cancel")
	}
}

func TestServeWithTransportRequiresServer(t *testing.T) {
	var s *Server
	if err := s.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for unconfigured server")
	}
}
