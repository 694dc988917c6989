// Package vm implements the Ember virtual machine.
//
// This package contains:
//   - Tagged value representation
//   - Chunk: the compiled code object (instructions + constant pool)
//   - Stack-based bytecode interpreter
//   - Disassembler and CBOR chunk encoding
package vm
