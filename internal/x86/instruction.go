// Completion: 100% - Instruction implementation complete
package x86

import (
	"fmt"

	"github.com/xyproto/tacet/internal/engine"
)

// Instruction layout, in emission order:
//
//	[legacy prefixes][REX][escape][opcode][ModRM [SIB]][displacement][immediate]
//
// https://wiki.osdev.org/X86-64_Instruction_Encoding

// An x86-64 instruction is never longer than 15 bytes
const maxInstructionLen = 15

// LegacyPrefix is a one byte prefix preceding REX
type LegacyPrefix byte

const (
	PrefixOperandSize LegacyPrefix = 0x66
	PrefixAddressSize LegacyPrefix = 0x67
	PrefixLock        LegacyPrefix = 0xF0
	PrefixRepne       LegacyPrefix = 0xF2
	PrefixRepe        LegacyPrefix = 0xF3
)

// Escape selects the opcode map
type Escape uint8

const (
	EscapeNone      Escape = iota // one byte opcode map
	EscapeSecondary               // 0F
	Escape0F38                    // 0F 38
	Escape0F3A                    // 0F 3A
)

func (e Escape) bytes() ([]byte, error) {
	switch e {
	case EscapeNone:
		return nil, nil
	case EscapeSecondary:
		return []byte{0x0F}, nil
	case Escape0F38:
		return []byte{0x0F, 0x38}, nil
	case Escape0F3A:
		return []byte{0x0F, 0x3A}, nil
	default:
		return nil, engine.ArgumentError(fmt.Sprintf("unknown opcode escape %d", e), engine.ErrInvalidOperand)
	}
}

// Rex holds the WRXB bits of a REX prefix (0100WRXB)
type Rex uint8

const (
	RexB Rex = 1 << iota // extends ModRM.rm, SIB.base or the opcode register
	RexX                 // extends SIB.index
	RexR                 // extends ModRM.reg
	RexW                 // 64-bit operand size
)

// Has reports whether all bits of f are set
func (r Rex) Has(f Rex) bool {
	return r&f == f
}

// With returns r with the bits of f set
func (r Rex) With(f Rex) Rex {
	return r | f
}

// Byte returns the encoded prefix
func (r Rex) Byte() byte {
	return 0x40 | byte(r&0x0F)
}

// Instruction is one machine instruction before serialization
type Instruction struct {
	Prefixes []LegacyPrefix
	// EmitRex is set when a REX byte is present, even if Rex is zero.
	// A bare 0x40 is what selects spl/bpl/sil/dil over ah/ch/dh/bh.
	EmitRex bool
	Rex     Rex
	Escape  Escape
	Opcode  byte
	ModRM   *ModRMSIB
	Disp    []byte
	Imm     []byte
}

// Bytes serializes the instruction
func (ins *Instruction) Bytes() ([]byte, error) {
	out := make([]byte, 0, maxInstructionLen)
	for _, p := range ins.Prefixes {
		out = append(out, byte(p))
	}

	if ins.EmitRex {
		if ins.Rex > 0x0F {
			return nil, engine.ArgumentError(fmt.Sprintf("REX bits %#x do not fit in 4 bits", uint8(ins.Rex)), engine.ErrFieldOverflow)
		}
		out = append(out, ins.Rex.Byte())
	} else if ins.Rex != 0 {
		return nil, engine.ArgumentError("REX bits set without a REX prefix", engine.ErrInvalidOperand)
	}

	escape, err := ins.Escape.bytes()
	if err != nil {
		return nil, err
	}
	out = append(out, escape...)
	out = append(out, ins.Opcode)

	if ins.ModRM != nil {
		modrm, err := ins.ModRM.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, modrm...)
	}

	out = append(out, ins.Disp...)
	out = append(out, ins.Imm...)

	if len(out) > maxInstructionLen {
		return nil, engine.ArgumentError(fmt.Sprintf("instruction is %d bytes long", len(out)), engine.ErrFieldOverflow)
	}
	return out, nil
}
