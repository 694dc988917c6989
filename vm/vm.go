package vm

import "errors"

// ---------------------------------------------------------------------------
// VM: bytecode interpreter
// ---------------------------------------------------------------------------

// ErrStackUnderflow is the runtime fault raised when an instruction pops
// an empty operand stack. A well-formed chunk never pops past what it
// pushed, so hitting this means a compiler or VM invariant was violated;
// it is reported as a returned error, never a panic.
var ErrStackUnderflow = errors.New("operand stack underflow")

// ErrMissingReturn is the runtime fault raised when execution runs off the
// end of a chunk. The compiler always emits a trailing OpReturn, so this
// is the same class of invariant violation as an underflow.
var ErrMissingReturn = errors.New("chunk ended without a return")

// VM executes a chunk's instruction sequence against an operand stack.
// The state lives for one Run call; the VM borrows the chunk read-only.
type VM struct {
	ip    int
	stack []Value
}

// New creates a VM.
func New() *VM {
	return &VM{}
}

// Run executes chunk from instruction 0 until OpReturn yields the program
// result or a runtime fault occurs. Control flow is strictly sequential;
// no jump instructions exist yet.
func (vm *VM) Run(chunk *Chunk) (Value, error) {
	vm.ip = 0
	vm.stack = vm.stack[:0]

	for vm.ip < len(chunk.Code) {
		inst := chunk.Code[vm.ip]
		vm.ip++

		switch inst.Op {
		case OpReturn:
			// An empty stack here is a fault, not a defined "no value"
			// result.
			v, ok := vm.pop()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			return v, nil

		case OpConstant:
			vm.push(chunk.ConstantAt(inst.Operand))

		case OpNegate:
			v, ok := vm.pop()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			vm.push(v.Negate())

		case OpAdd:
			left, right, ok := vm.popOperands()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			vm.push(left.Add(right))

		case OpSubtract:
			left, right, ok := vm.popOperands()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			vm.push(left.Subtract(right))

		case OpMultiply:
			left, right, ok := vm.popOperands()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			vm.push(left.Multiply(right))

		case OpDivide:
			left, right, ok := vm.popOperands()
			if !ok {
				return Value{}, ErrStackUnderflow
			}
			vm.push(left.Divide(right))
		}
	}

	return Value{}, ErrMissingReturn
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (Value, bool) {
	if len(vm.stack) == 0 {
		return Value{}, false
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, true
}

// popOperands pops the right operand first (it was pushed last), then the
// left.
func (vm *VM) popOperands() (left, right Value, ok bool) {
	right, ok = vm.pop()
	if !ok {
		return Value{}, Value{}, false
	}
	left, ok = vm.pop()
	if !ok {
		return Value{}, Value{}, false
	}
	return left, right, true
}
