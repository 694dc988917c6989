package vm

import (
	"math"
	"testing"
)

func TestValueArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Value
		want float64
	}{
		{"negate", NumberValue(7).Negate(), -7},
		{"negate zero", NumberValue(0).Negate(), 0},
		{"add", NumberValue(1.5).Add(NumberValue(2.25)), 3.75},
		{"subtract", NumberValue(10).Subtract(NumberValue(4)), 6},
		{"multiply", NumberValue(3).Multiply(NumberValue(5)), 15},
		{"divide", NumberValue(9).Divide(NumberValue(2)), 4.5},
	}

	for _, tc := range tests {
		if tc.got.Kind != KindNumber || tc.got.Number != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

// Division by zero follows IEEE-754: infinities and NaN, never a fault.
func TestValueDivideByZero(t *testing.T) {
	if v := NumberValue(1).Divide(NumberValue(0)); !math.IsInf(v.Number, 1) {
		t.Errorf("1 / 0 = %v, want +Inf", v)
	}
	if v := NumberValue(-1).Divide(NumberValue(0)); !math.IsInf(v.Number, -1) {
		t.Errorf("-1 / 0 = %v, want -Inf", v)
	}
	if v := NumberValue(0).Divide(NumberValue(0)); !math.IsNaN(v.Number) {
		t.Errorf("0 / 0 = %v, want NaN", v)
	}
}

// Arithmetic produces new values; the operands are unchanged.
func TestValueImmutable(t *testing.T) {
	v := NumberValue(3)
	_ = v.Negate()
	_ = v.Add(NumberValue(1))
	if v != NumberValue(3) {
		t.Errorf("operand mutated: %v", v)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NumberValue(42), "42"},
		{NumberValue(3.14), "3.14"},
		{NumberValue(-0.5), "-0.5"},
	}

	for _, tc := range tests {
		if got := tc.value.String(); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.value.Number, got, tc.want)
		}
	}
}
