// Completion: 100% - Instruction implementation complete
package x86

import (
	"encoding/binary"
	"fmt"

	"github.com/xyproto/tacet/internal/engine"
	"github.com/xyproto/tacet/internal/ir"
)

const (
	opMovImm8 = 0xB0 // MOV r8, imm8 (+rb)
	opMovImm  = 0xB8 // MOV r16/32/64, imm16/32/64 (+rw/rd/ro)
)

// MovImm encodes "mov dst, imm" at width t, using the B0+r / B8+r forms.
// The immediate is truncated to exactly the operand width.
func MovImm(dst ir.Register, t ir.RegisterType, imm uint64) (Instruction, error) {
	if !dst.Valid() {
		return Instruction{}, engine.ArgumentError(fmt.Sprintf("register ordinal %d out of range", dst.Ordinal()), engine.ErrInvalidOperand)
	}

	var ins Instruction
	switch t {
	case ir.Byte:
		ins.Opcode = opMovImm8 + dst.Low3()
		// Without REX, 4-7 select ah, ch, dh, bh
		if dst >= ir.Sp && dst <= ir.Di {
			ins.EmitRex = true
		}
	case ir.Word:
		ins.Prefixes = []LegacyPrefix{PrefixOperandSize}
		ins.Opcode = opMovImm + dst.Low3()
	case ir.DoubleWord:
		ins.Opcode = opMovImm + dst.Low3()
	case ir.QuadWord:
		ins.Opcode = opMovImm + dst.Low3()
		ins.EmitRex = true
		ins.Rex = ins.Rex.With(RexW)
	default:
		return Instruction{}, engine.ArgumentError(fmt.Sprintf("unknown operand width %d", uint8(t)), engine.ErrInvalidOperand)
	}

	if dst.Extended() {
		ins.EmitRex = true
		ins.Rex = ins.Rex.With(RexB)
	}

	ins.Imm = immediate(imm, t.Size())
	return ins, nil
}

// MovAddress encodes "mov dst, addr" for a 64-bit absolute address
func MovAddress(dst ir.Register, addr uint64) (Instruction, error) {
	return MovImm(dst, ir.QuadWord, addr)
}

// immediate returns the size low bytes of v, least significant first
func immediate(v uint64, size int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append([]byte(nil), buf[:size]...)
}
