package vm

import "strconv"

// ---------------------------------------------------------------------------
// Value: runtime value representation
// ---------------------------------------------------------------------------

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindNumber is a 64-bit IEEE-754 floating point number. It is the
	// only kind today; booleans, strings and nil slot in as further kinds
	// without reshaping arithmetic dispatch or the constant pool.
	KindNumber ValueKind = iota
)

// Value is an immutable tagged runtime value. Arithmetic produces new
// values rather than mutating operands.
type Value struct {
	Kind   ValueKind
	Number float64
}

// NumberValue wraps a float64 as a Value.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// Negate returns the arithmetic negation of v.
func (v Value) Negate() Value {
	switch v.Kind {
	default: // KindNumber
		return NumberValue(-v.Number)
	}
}

// Add returns v + other.
func (v Value) Add(other Value) Value {
	switch v.Kind {
	default: // KindNumber
		return NumberValue(v.Number + other.Number)
	}
}

// Subtract returns v - other.
func (v Value) Subtract(other Value) Value {
	switch v.Kind {
	default: // KindNumber
		return NumberValue(v.Number - other.Number)
	}
}

// Multiply returns v * other.
func (v Value) Multiply(other Value) Value {
	switch v.Kind {
	default: // KindNumber
		return NumberValue(v.Number * other.Number)
	}
}

// Divide returns v / other. Division by zero follows IEEE-754 semantics
// and yields an infinity or NaN, not a fault.
func (v Value) Divide(other Value) Value {
	switch v.Kind {
	default: // KindNumber
		return NumberValue(v.Number / other.Number)
	}
}

func (v Value) String() string {
	switch v.Kind {
	default: // KindNumber
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
}
