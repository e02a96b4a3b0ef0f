// Completion: 100% - Instruction implementation complete
package x86

import (
	"fmt"
	"os"

	"github.com/xyproto/tacet/internal/engine"
	"github.com/xyproto/tacet/internal/ir"
)

// SymbolTable gives the resolved virtual address of a declared symbol
type SymbolTable interface {
	Address(ref ir.SymbolRef) (uint64, bool)
}

// Encoder turns IR instructions into machine code
type Encoder struct {
	symbols SymbolTable
}

// NewEncoder returns an encoder resolving LoadSymbol through symbols.
// symbols may be nil for programs without symbol references.
func NewEncoder(symbols SymbolTable) *Encoder {
	return &Encoder{symbols: symbols}
}

// Lower expands one IR instruction into machine instructions
func (e *Encoder) Lower(inst ir.Inst) ([]Instruction, error) {
	switch inst := inst.(type) {
	case ir.LoadImm:
		ins, err := MovImm(inst.Register, inst.Type, inst.Imm)
		if err != nil {
			return nil, err
		}
		return []Instruction{ins}, nil
	case ir.LoadSymbol:
		addr, err := e.resolve(inst.Symbol)
		if err != nil {
			return nil, err
		}
		ins, err := MovAddress(inst.Register, addr)
		if err != nil {
			return nil, err
		}
		return []Instruction{ins}, nil
	case ir.Syscall:
		return Syscall(inst.Name)
	default:
		return nil, engine.ArgumentError(fmt.Sprintf("unsupported instruction %T", inst), engine.ErrInvalidOperand)
	}
}

// Encode returns the machine code for one IR instruction
func (e *Encoder) Encode(inst ir.Inst) ([]byte, error) {
	lowered, err := e.Lower(inst)
	if err != nil {
		return nil, err
	}

	var code []byte
	for i := range lowered {
		b, err := lowered[i].Bytes()
		if err != nil {
			return nil, err
		}
		code = append(code, b...)
	}

	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "%s: % x\n", inst, code)
	}
	return code, nil
}

func (e *Encoder) resolve(ref ir.SymbolRef) (uint64, error) {
	if e.symbols != nil {
		if addr, ok := e.symbols.Address(ref); ok {
			return addr, nil
		}
	}
	return 0, engine.ReferenceError(fmt.Sprintf("%s has not been resolved", ref))
}
