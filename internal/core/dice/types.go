package dice

import "errors"

// ErrContractViolation indicates a token that does not match dice notation
// reached a stage that requires a filtered expression.
var ErrContractViolation = errors.New("expression does not match dice notation")

// ErrOutOfRange indicates a dice notation digit group does not fit in an int.
var ErrOutOfRange = errors.New("dice notation value out of range")

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// ErrInvalidLimits indicates a limit configuration with negative values.
var ErrInvalidLimits = errors.New("roll limits must be non-negative")

// ErrMissingSource indicates no random source was supplied.
var ErrMissingSource = errors.New("random source is required")

// Source draws uniformly distributed integers in [0, n).
//
// *math/rand.Rand satisfies Source; production callers use the crypto-backed
// source from the random package.
type Source interface {
	Intn(n int) int
}

// Spec describes a die to roll and how many times to roll it.
type Spec struct {
	Count int
	Sides int
}

// Roll captures the results for a single dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result captures the results from rolling multiple dice specs.
type Result struct {
	Rolls []Roll
	Total int
}

// Line pairs an accepted expression with the roll it produced.
type Line struct {
	Expression string
	Spec       Spec
	Roll       Roll
}

// String renders the line as "<expression>: [<d1>, <d2>, ...] (<sum>)".
func (l Line) String() string {
	return FormatLine(l.Expression, l.Roll)
}

// Evaluation is the outcome of one evaluation call.
type Evaluation struct {
	Lines []Line
	Total int
}

// Empty reports whether no expression survived filtering and limit checks.
func (e Evaluation) Empty() bool {
	return len(e.Lines) == 0
}

// Strings returns the formatted result lines in input order.
func (e Evaluation) Strings() []string {
	out := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		out = append(out, line.String())
	}
	return out
}
