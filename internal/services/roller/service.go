// Package roller turns chat-style roll requests into reply text.
//
// It wraps the dice evaluator with the presentation contract: result lines
// are joined into a literal text block, and an empty evaluation becomes a
// usage hint that quotes the configured limits.
package roller

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/dicebot/internal/core/dice"
	apperrors "github.com/louisbranch/dicebot/internal/platform/errors"
	"github.com/louisbranch/dicebot/internal/platform/id"
	"github.com/louisbranch/dicebot/internal/random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/dicebot/internal/services/roller"

// Coin faces returned by Flip.
const (
	CoinHeads = "Heads!"
	CoinTails = "Tails!"
)

// Service rolls dice expressions against a fixed limit configuration.
type Service struct {
	limits dice.Limits
	source dice.Source
	tracer trace.Tracer
	newID  func() (string, error)
	logf   func(format string, args ...any)
}

// Option customizes a Service.
type Option func(*Service)

// WithLimits overrides the default limits.
func WithLimits(limits dice.Limits) Option {
	return func(s *Service) {
		s.limits = limits
	}
}

// WithSource overrides the crypto-backed random source. Intended for tests.
func WithSource(source dice.Source) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithLogger overrides the log.Printf sink.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Service) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// NewService builds a Service with default limits, the crypto source and the
// global tracer provider unless overridden.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		limits: dice.DefaultLimits(),
		source: random.Default,
		tracer: otel.Tracer(tracerName),
		newID:  id.NewID,
		logf:   log.Printf,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.limits.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, apperrors.Wrap(apperrors.CodeDiceMissingSource, "new roll service", dice.ErrMissingSource)
	}
	return s, nil
}

// Limits returns the limits applied to every roll.
func (s *Service) Limits() dice.Limits {
	return s.limits
}

// Reply is the outcome of one roll request.
type Reply struct {
	InvocationID string
	Lines        []string
	Total        int
	Limits       dice.Limits
}

// Empty reports whether no expression produced a roll.
func (r Reply) Empty() bool {
	return len(r.Lines) == 0
}

// Text renders the reply as chat text: the result lines in a literal block,
// or the usage message when nothing was rolled.
func (r Reply) Text() string {
	if r.Empty() {
		return UsageMessage(r.Limits)
	}
	return "```" + strings.Join(r.Lines, "\n") + "```"
}

// UsageMessage explains the accepted notation and the per-roll limits.
func UsageMessage(limits dice.Limits) string {
	return fmt.Sprintf("No valid rolls supplied. Please use D&D format, e.g. 5d6.\n"+
		"Individual rolls cannot have more than %d dice, and dice cannot have "+
		"more than %d sides.", limits.MaxRollSize, limits.MaxDieSize)
}

// Roll evaluates expressions and returns the reply. An empty reply is a
// normal outcome; errors only signal broken internal invariants.
func (s *Service) Roll(ctx context.Context, expressions []string) (Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	invocationID, err := s.newID()
	if err != nil {
		return Reply{}, apperrors.Wrap(apperrors.CodeInvocationID, "generate invocation id", err)
	}

	_, span := s.tracer.Start(ctx, "dice.roll", trace.WithAttributes(
		attribute.String("dice.invocation_id", invocationID),
		attribute.Int("dice.expressions", len(expressions)),
		attribute.Int("dice.max_rolls", s.limits.MaxRolls),
		attribute.Int("dice.max_draws", s.limits.MaxDraws()),
	))
	defer span.End()

	evaluation, err := dice.Evaluate(s.source, s.limits, expressions...)
	if err != nil {
		recordEvaluationError(span, err)
		if apperrors.GetCode(err).Internal() {
			s.logf("roll %s: internal error: %v", invocationID, err)
		} else {
			s.logf("roll %s rejected: %v", invocationID, err)
		}
		return Reply{}, fmt.Errorf("evaluate dice: %w", err)
	}

	lines := evaluation.Strings()
	span.SetAttributes(
		attribute.Int("dice.lines", len(lines)),
		attribute.Bool("dice.empty", evaluation.Empty()),
	)
	s.logf("roll %s: %d expressions, %d rolled", invocationID, len(expressions), len(lines))

	return Reply{
		InvocationID: invocationID,
		Lines:        lines,
		Total:        evaluation.Total,
		Limits:       s.limits,
	}, nil
}

// recordEvaluationError marks span failed and copies the error code and
// metadata into span attributes.
func recordEvaluationError(span trace.Span, err error) {
	code := apperrors.GetCode(err)
	span.RecordError(err)
	span.SetAttributes(attribute.String("dice.error.code", string(code)))

	var domainErr *apperrors.Error
	if apperrors.As(err, &domainErr) {
		for key, value := range domainErr.Metadata {
			span.SetAttributes(attribute.String("dice.error."+strings.ToLower(key), value))
		}
	}

	if code.Internal() {
		span.SetStatus(codes.Error, "internal invariant broken")
		return
	}
	span.SetStatus(codes.Error, "roll rejected")
}

// Flip flips a coin with the service's random source.
func (s *Service) Flip(ctx context.Context) string {
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := s.tracer.Start(ctx, "coin.flip")
	defer span.End()

	face := CoinHeads
	if s.source.Intn(2) == 1 {
		face = CoinTails
	}
	span.SetAttributes(attribute.String("coin.face", face))
	return face
}
