package dice

import (
	"strconv"
	"strings"
)

// RollDice rolls every spec using the provided random source.
//
// # Ordering
//
// Specs are processed in slice order. The resulting Roll entries in
// Result.Rolls appear in the same order as the corresponding specs.
//
// # Totals
//
// For each Roll in Result.Rolls, the Total field is the sum of all values in
// Results for that spec. Result.Total is the sum of every die rolled across
// the entire request.
//
// # Errors
//
//   - src must not be nil, otherwise ErrMissingSource is returned.
//   - At least one Spec must be provided, otherwise ErrMissingDice is returned.
//   - Each Spec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
//
// Example:
//
//	result, err := RollDice(random.Default, []Spec{
//	    {Count: 2, Sides: 6}, // roll 2d6
//	    {Count: 1, Sides: 8}, // roll 1d8
//	})
func RollDice(src Source, specs []Spec) (Result, error) {
	if src == nil {
		return Result{}, ErrMissingSource
	}
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		roll, err := RollSpec(src, spec)
		if err != nil {
			return Result{}, err
		}
		rolls = append(rolls, roll)
		total += roll.Total
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// RollSpec rolls spec.Count independent dice with spec.Sides sides each.
func RollSpec(src Source, spec Spec) (Roll, error) {
	if src == nil {
		return Roll{}, ErrMissingSource
	}
	if spec.Sides <= 0 || spec.Count <= 0 {
		return Roll{}, ErrInvalidDiceSpec
	}

	results := make([]int, spec.Count)
	total := 0
	for i := range results {
		value := rollDie(src, spec.Sides)
		results[i] = value
		total += value
	}

	return Roll{
		Sides:   spec.Sides,
		Results: results,
		Total:   total,
	}, nil
}

// FormatLine renders a roll as "<expression>: [<d1>, <d2>, ...] (<sum>)".
func FormatLine(expression string, roll Roll) string {
	var b strings.Builder
	b.WriteString(expression)
	b.WriteString(": [")
	for i, value := range roll.Results {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(value))
	}
	b.WriteString("] (")
	b.WriteString(strconv.Itoa(roll.Total))
	b.WriteString(")")
	return b.String()
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
