package dice

import (
	"errors"
	"testing"
)

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	if limits.MaxRolls != 20 || limits.MaxRollSize != 30 || limits.MaxDieSize != 2000 {
		t.Fatalf("unexpected defaults: %+v", limits)
	}
	if err := limits.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if limits.MaxDraws() != 600 {
		t.Fatalf("MaxDraws() = %d, want 600", limits.MaxDraws())
	}
}

func TestLimitsValidate(t *testing.T) {
	tests := []Limits{
		{MaxRolls: -1, MaxRollSize: 1, MaxDieSize: 1},
		{MaxRolls: 1, MaxRollSize: -1, MaxDieSize: 1},
		{MaxRolls: 1, MaxRollSize: 1, MaxDieSize: -1},
	}
	for _, limits := range tests {
		if err := limits.Validate(); !errors.Is(err, ErrInvalidLimits) {
			t.Fatalf("Validate(%+v) error = %v, want %v", limits, err, ErrInvalidLimits)
		}
	}
}

func TestLimitsAllows(t *testing.T) {
	limits := DefaultLimits()
	tests := []struct {
		spec Spec
		want bool
	}{
		{spec: Spec{Count: 30, Sides: 2000}, want: true},
		{spec: Spec{Count: 31, Sides: 6}, want: false},
		{spec: Spec{Count: 1, Sides: 2001}, want: false},
		{spec: Spec{Count: 0, Sides: 0}, want: true},
	}
	for _, tt := range tests {
		if got := limits.Allows(tt.spec); got != tt.want {
			t.Fatalf("Allows(%+v) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}
