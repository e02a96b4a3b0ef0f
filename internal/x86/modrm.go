package x86

import (
	"fmt"

	"github.com/xyproto/tacet/internal/engine"
)

const (
	ModIndirect       = 0b00
	ModDisp8          = 0b01
	ModDisp32         = 0b10
	ModRegisterDirect = 0b11

	// rm value that means "a SIB byte follows" when mod != 0b11
	rmSIB = 0b100
)

// ModRMSIB is the addressing form of an instruction. Scale, Index and Base
// are only emitted when NeedsSIB is true.
type ModRMSIB struct {
	Mod uint8 // 2 bits
	Reg uint8 // 3 bits: register or opcode extension
	RM  uint8 // 3 bits: register or memory base

	Scale uint8 // 2 bits
	Index uint8 // 3 bits
	Base  uint8 // 3 bits
}

// RegisterDirect returns the mod=11 form addressing register rm
func RegisterDirect(reg, rm uint8) *ModRMSIB {
	return &ModRMSIB{Mod: ModRegisterDirect, Reg: reg, RM: rm}
}

// NeedsSIB reports whether a SIB byte follows the ModRM byte
func (m ModRMSIB) NeedsSIB() bool {
	return m.Mod != ModRegisterDirect && m.RM == rmSIB
}

// Encode returns the ModRM byte, followed by the SIB byte when needed
func (m ModRMSIB) Encode() ([]byte, error) {
	if err := checkField("mod", m.Mod, 2); err != nil {
		return nil, err
	}
	if err := checkField("reg", m.Reg, 3); err != nil {
		return nil, err
	}
	if err := checkField("rm", m.RM, 3); err != nil {
		return nil, err
	}
	out := []byte{m.Mod<<6 | m.Reg<<3 | m.RM}

	if m.NeedsSIB() {
		if err := checkField("scale", m.Scale, 2); err != nil {
			return nil, err
		}
		if err := checkField("index", m.Index, 3); err != nil {
			return nil, err
		}
		if err := checkField("base", m.Base, 3); err != nil {
			return nil, err
		}
		out = append(out, m.Scale<<6|m.Index<<3|m.Base)
	}
	return out, nil
}

func checkField(name string, v uint8, bits uint) error {
	if v>>bits != 0 {
		return engine.ArgumentError(fmt.Sprintf("%s field %#b does not fit in %d bits", name, v, bits), engine.ErrFieldOverflow)
	}
	return nil
}
