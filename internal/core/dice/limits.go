package dice

import (
	"strconv"

	apperrors "github.com/louisbranch/dicebot/internal/platform/errors"
)

// Default limits applied when the caller does not override them.
const (
	DefaultMaxRolls    = 20
	DefaultMaxRollSize = 30
	DefaultMaxDieSize  = 2000
)

// Limits bounds the work done by one evaluation.
type Limits struct {
	// MaxRolls caps how many expressions are processed per call.
	MaxRolls int
	// MaxRollSize caps the dice count of one expression.
	MaxRollSize int
	// MaxDieSize caps the sides of one die.
	MaxDieSize int
}

// DefaultLimits returns the shipped limit configuration.
func DefaultLimits() Limits {
	return Limits{
		MaxRolls:    DefaultMaxRolls,
		MaxRollSize: DefaultMaxRollSize,
		MaxDieSize:  DefaultMaxDieSize,
	}
}

// Validate rejects negative limits.
func (l Limits) Validate() error {
	if l.MaxRolls < 0 || l.MaxRollSize < 0 || l.MaxDieSize < 0 {
		return apperrors.WrapWithMetadata(
			apperrors.CodeDiceInvalidLimits,
			"validate roll limits",
			map[string]string{
				"MaxRolls":    strconv.Itoa(l.MaxRolls),
				"MaxRollSize": strconv.Itoa(l.MaxRollSize),
				"MaxDieSize":  strconv.Itoa(l.MaxDieSize),
			},
			ErrInvalidLimits,
		)
	}
	return nil
}

// Allows reports whether spec fits within the per-roll limits.
func (l Limits) Allows(spec Spec) bool {
	return spec.Count <= l.MaxRollSize && spec.Sides <= l.MaxDieSize
}

// MaxDraws is the worst-case number of dice drawn by one evaluation.
func (l Limits) MaxDraws() int {
	return l.MaxRolls * l.MaxRollSize
}
