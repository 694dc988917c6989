package vm

import "fmt"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Op identifies a single bytecode instruction.
type Op byte

const (
	OpReturn   Op = iota // pop and yield the program result
	OpConstant           // push a constant (pool index in Operand)
	OpNegate             // pop one, push its negation
	OpAdd                // pop right then left, push left + right
	OpSubtract           // pop right then left, push left - right
	OpMultiply           // pop right then left, push left * right
	OpDivide             // pop right then left, push left / right
)

var opNames = map[Op]string{
	OpReturn:   "RETURN",
	OpConstant: "CONSTANT",
	OpNegate:   "NEGATE",
	OpAdd:      "ADD",
	OpSubtract: "SUBTRACT",
	OpMultiply: "MULTIPLY",
	OpDivide:   "DIVIDE",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", byte(op))
}

// Instruction is one emitted bytecode instruction. Operand is meaningful
// only for OpConstant, where it indexes the chunk's constant pool. Line is
// the 1-based source line the instruction is attributed to.
type Instruction struct {
	Op      Op
	Operand int
	Line    int
}

// ---------------------------------------------------------------------------
// Chunk: compiled code object
// ---------------------------------------------------------------------------

// Chunk pairs an instruction sequence with its constant pool. It is
// append-only during compilation and read-only during execution; the
// compilation that builds it owns it exclusively until it is handed to the
// VM.
type Chunk struct {
	Code      []Instruction
	Constants []Value
}

// NewChunk creates an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddInstruction appends an instruction attributed to the given line.
func (c *Chunk) AddInstruction(op Op, operand int, line int) {
	c.Code = append(c.Code, Instruction{Op: op, Operand: operand, Line: line})
}

// AddConstant appends a constant and returns its pool index. The compiler
// only ever emits OpConstant operands it just got from here, so every
// emitted index is in range by construction.
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// ConstantAt returns the constant at pool index i.
func (c *Chunk) ConstantAt(i int) Value {
	return c.Constants[i]
}
