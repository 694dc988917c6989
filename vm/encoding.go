package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Chunk wire encoding (CBOR)
// ---------------------------------------------------------------------------

// WireVersion is the current chunk encoding version. Decoding rejects any
// other version rather than guessing.
const WireVersion byte = 1

type wireInstruction struct {
	Op      byte `cbor:"1,keyasint"`
	Operand int  `cbor:"2,keyasint,omitempty"`
	Line    int  `cbor:"3,keyasint,omitempty"`
}

type wireValue struct {
	Kind   int     `cbor:"1,keyasint"`
	Number float64 `cbor:"2,keyasint,omitempty"`
}

type wireChunk struct {
	Version   byte              `cbor:"1,keyasint"`
	Code      []wireInstruction `cbor:"2,keyasint"`
	Constants []wireValue       `cbor:"3,keyasint"`
}

// EncodeChunk serializes a chunk to its CBOR wire form.
func EncodeChunk(c *Chunk) ([]byte, error) {
	w := wireChunk{
		Version:   WireVersion,
		Code:      make([]wireInstruction, len(c.Code)),
		Constants: make([]wireValue, len(c.Constants)),
	}
	for i, inst := range c.Code {
		w.Code[i] = wireInstruction{Op: byte(inst.Op), Operand: inst.Operand, Line: inst.Line}
	}
	for i, v := range c.Constants {
		w.Constants[i] = wireValue{Kind: int(v.Kind), Number: v.Number}
	}
	return cbor.Marshal(w)
}

// DecodeChunk deserializes a chunk from its CBOR wire form.
func DecodeChunk(data []byte) (*Chunk, error) {
	var w wireChunk
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding chunk: %w", err)
	}
	if w.Version != WireVersion {
		return nil, fmt.Errorf("unsupported chunk version %d", w.Version)
	}

	c := NewChunk()
	for _, inst := range w.Code {
		if inst.Op == byte(OpConstant) && (inst.Operand < 0 || inst.Operand >= len(w.Constants)) {
			return nil, fmt.Errorf("constant index %d out of range", inst.Operand)
		}
		c.AddInstruction(Op(inst.Op), inst.Operand, inst.Line)
	}
	for _, v := range w.Constants {
		c.AddConstant(Value{Kind: ValueKind(v.Kind), Number: v.Number})
	}
	return c, nil
}
