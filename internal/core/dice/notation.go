// Package dice parses dice notation and rolls bounded dice pools.
//
// Expressions follow the <count>d<size> convention: one or more digits, a
// single case-insensitive "d" separator, and one or more digits. Anything
// else is filtered out without an error.
package dice

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/dicebot/internal/platform/errors"
)

var notationPattern = regexp.MustCompile(`^[0-9]+[dD][0-9]+$`)

// Match reports whether expression is a complete dice notation token.
func Match(expression string) bool {
	return notationPattern.MatchString(expression)
}

// Filter returns the expressions that fully match dice notation, in their
// original order.
func Filter(expressions ...string) []string {
	accepted := make([]string, 0, len(expressions))
	for _, expression := range expressions {
		if Match(expression) {
			accepted = append(accepted, expression)
		}
	}
	return accepted
}

// Parse splits a dice notation token into its count and sides.
//
// Leading zeros are accepted. Parse returns ErrContractViolation, wrapped in a
// platform error, when expression was not filtered first, and ErrOutOfRange
// when a digit group is too large for an int.
func Parse(expression string) (Spec, error) {
	if !Match(expression) {
		return Spec{}, contractViolation(expression)
	}

	count, sides, _ := strings.Cut(strings.ToLower(expression), "d")
	countValue, err := parseDigits(count)
	if err != nil {
		return Spec{}, err
	}
	sidesValue, err := parseDigits(sides)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Count: countValue, Sides: sidesValue}, nil
}

func parseDigits(digits string) (int, error) {
	value, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrOutOfRange
	}
	if err != nil {
		return 0, contractViolation(digits)
	}
	return value, nil
}

func contractViolation(expression string) error {
	return apperrors.WrapWithMetadata(
		apperrors.CodeDiceContractViolation,
		"parse dice notation "+strconv.Quote(expression),
		map[string]string{"Expression": expression},
		ErrContractViolation,
	)
}
