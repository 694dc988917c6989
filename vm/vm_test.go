package vm

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Basic execution tests
// ---------------------------------------------------------------------------

func TestRunConstant(t *testing.T) {
	chunk := NewChunk()
	idx := chunk.AddConstant(NumberValue(42))
	chunk.AddInstruction(OpConstant, idx, 1)
	chunk.AddInstruction(OpReturn, 0, 1)

	result, err := New().Run(chunk)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != NumberValue(42) {
		t.Errorf("result = %v, want 42", result)
	}
}

func TestRunNegate(t *testing.T) {
	chunk := NewChunk()
	chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(7)), 1)
	chunk.AddInstruction(OpNegate, 0, 1)
	chunk.AddInstruction(OpReturn, 0, 1)

	result, err := New().Run(chunk)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != NumberValue(-7) {
		t.Errorf("result = %v, want -7", result)
	}
}

func TestRunBinaryOps(t *testing.T) {
	tests := []struct {
		op          Op
		left, right float64
		want        float64
	}{
		{OpAdd, 1, 2, 3},
		{OpSubtract, 10, 4, 6},
		{OpMultiply, 3, 5, 15},
		{OpDivide, 9, 2, 4.5},
	}

	for _, tc := range tests {
		chunk := NewChunk()
		chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(tc.left)), 1)
		chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(tc.right)), 1)
		chunk.AddInstruction(tc.op, 0, 1)
		chunk.AddInstruction(OpReturn, 0, 1)

		result, err := New().Run(chunk)
		if err != nil {
			t.Fatalf("Run(%v): %v", tc.op, err)
		}
		if result != NumberValue(tc.want) {
			t.Errorf("%v %v %v = %v, want %v", tc.left, tc.op, tc.right, result, tc.want)
		}
	}
}

// Operand order: the right operand was pushed last and is popped first.
func TestRunOperandOrder(t *testing.T) {
	chunk := NewChunk()
	chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(1)), 1)
	chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(2)), 1)
	chunk.AddInstruction(OpSubtract, 0, 1)
	chunk.AddInstruction(OpReturn, 0, 1)

	result, err := New().Run(chunk)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != NumberValue(-1) {
		t.Errorf("1 - 2 = %v, want -1", result)
	}
}

// ---------------------------------------------------------------------------
// Runtime fault tests
// ---------------------------------------------------------------------------

func TestRunStackUnderflow(t *testing.T) {
	tests := []struct {
		name string
		ops  []Op
	}{
		{"negate on empty stack", []Op{OpNegate, OpReturn}},
		{"add on empty stack", []Op{OpAdd, OpReturn}},
		{"subtract with one operand", []Op{OpConstant, OpSubtract, OpReturn}},
		{"return on empty stack", []Op{OpReturn}},
	}

	for _, tc := range tests {
		chunk := NewChunk()
		chunk.AddConstant(NumberValue(1))
		for _, op := range tc.ops {
			chunk.AddInstruction(op, 0, 1)
		}

		_, err := New().Run(chunk)
		if !errors.Is(err, ErrStackUnderflow) {
			t.Errorf("%s: err = %v, want ErrStackUnderflow", tc.name, err)
		}
	}
}

func TestRunMissingReturn(t *testing.T) {
	chunk := NewChunk()
	chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(1)), 1)

	_, err := New().Run(chunk)
	if !errors.Is(err, ErrMissingReturn) {
		t.Errorf("err = %v, want ErrMissingReturn", err)
	}
}

// A VM can be reused across runs; state from a faulted run never leaks
// into the next one.
func TestRunReuse(t *testing.T) {
	vm := New()

	bad := NewChunk()
	bad.AddInstruction(OpAdd, 0, 1)
	if _, err := vm.Run(bad); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("err = %v, want ErrStackUnderflow", err)
	}

	good := NewChunk()
	good.AddInstruction(OpConstant, good.AddConstant(NumberValue(5)), 1)
	good.AddInstruction(OpReturn, 0, 1)

	result, err := vm.Run(good)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != NumberValue(5) {
		t.Errorf("result = %v, want 5", result)
	}
}

// The VM borrows the chunk read-only.
func TestRunDoesNotMutateChunk(t *testing.T) {
	chunk := NewChunk()
	chunk.AddInstruction(OpConstant, chunk.AddConstant(NumberValue(3)), 1)
	chunk.AddInstruction(OpReturn, 0, 1)

	before := append([]Instruction{}, chunk.Code...)
	if _, err := New().Run(chunk); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := range before {
		if chunk.Code[i] != before[i] {
			t.Errorf("code[%d] changed: %+v -> %+v", i, before[i], chunk.Code[i])
		}
	}
}
