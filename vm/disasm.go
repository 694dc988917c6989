package vm

import (
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Disassembler: readable dump of a chunk
// ---------------------------------------------------------------------------

// Disassemble writes an assembly-style dump of the chunk to w: offset,
// source line, mnemonic, and for OpConstant the operand with the resolved
// constant. It is a pure read; dumping the same chunk twice yields
// identical output.
func (c *Chunk) Disassemble(w io.Writer) {
	for offset, inst := range c.Code {
		fmt.Fprintf(w, "%04d %4d %-10s", offset, inst.Line, inst.Op)
		if inst.Op == OpConstant {
			fmt.Fprintf(w, " %d ; %s", inst.Operand, c.ConstantAt(inst.Operand))
		}
		fmt.Fprintln(w)
	}
}

// DisassembleString returns the dump as a string.
func (c *Chunk) DisassembleString() string {
	var sb strings.Builder
	c.Disassemble(&sb)
	return sb.String()
}
