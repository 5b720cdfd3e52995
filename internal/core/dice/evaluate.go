package dice

import (
	"errors"

	apperrors "github.com/louisbranch/dicebot/internal/platform/errors"
)

// Evaluate filters expressions and rolls the ones that pass the limits.
//
// Malformed, oversized and degenerate expressions are skipped, never
// reported. A result with no lines is the "no valid rolls" outcome and is
// not an error; errors only signal invalid limits or a missing source.
func Evaluate(src Source, limits Limits, expressions ...string) (Evaluation, error) {
	return Generate(src, limits, Filter(expressions...))
}

// Generate rolls already-filtered expressions.
//
// Only the first limits.MaxRolls expressions are considered. For each one:
//
//   - count > MaxRollSize or sides > MaxDieSize: skipped.
//   - sides > 1 and count >= 1: rolled.
//   - otherwise (a die with fewer than two sides, or zero dice): skipped.
//
// An expression that does not match dice notation breaks the contract with
// Filter and fails the whole call with ErrContractViolation.
func Generate(src Source, limits Limits, expressions []string) (Evaluation, error) {
	if err := limits.Validate(); err != nil {
		return Evaluation{}, err
	}
	if src == nil {
		return Evaluation{}, apperrors.Wrap(apperrors.CodeDiceMissingSource, "generate rolls", ErrMissingSource)
	}

	if len(expressions) > limits.MaxRolls {
		expressions = expressions[:limits.MaxRolls]
	}

	accepted := make([]string, 0, len(expressions))
	specs := make([]Spec, 0, len(expressions))
	for _, expression := range expressions {
		spec, err := Parse(expression)
		if errors.Is(err, ErrOutOfRange) {
			continue
		}
		if err != nil {
			return Evaluation{}, err
		}
		if !limits.Allows(spec) {
			continue
		}
		if spec.Sides <= 1 || spec.Count < 1 {
			continue
		}
		accepted = append(accepted, expression)
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return Evaluation{Lines: []Line{}}, nil
	}

	result, err := RollDice(src, specs)
	if err != nil {
		return Evaluation{}, err
	}

	lines := make([]Line, len(specs))
	for i, roll := range result.Rolls {
		lines[i] = Line{
			Expression: accepted[i],
			Spec:       specs[i],
			Roll:       roll,
		}
	}
	return Evaluation{Lines: lines, Total: result.Total}, nil
}
