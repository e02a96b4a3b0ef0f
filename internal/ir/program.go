package ir

import "fmt"

// Program is the unit handed to the builder. Symbols end up in the data
// segment in declaration order and Insts in the code segment in program order.
type Program struct {
	Symbols []Symbol
	Insts   []Inst
}

// Symbol is a constant stored in the data segment
type Symbol interface {
	// Bytes returns the raw bytes placed in the data segment
	Bytes() []byte
}

// StringSymbol is an immutable byte string, such as a message to print
type StringSymbol string

func (s StringSymbol) Bytes() []byte {
	return []byte(s)
}

// SymbolRef is the position of a symbol in Program.Symbols
type SymbolRef int

func (r SymbolRef) String() string {
	return fmt.Sprintf("sym#%d", int(r))
}

// AddString declares a string symbol and returns a reference to it
func (p *Program) AddString(s string) SymbolRef {
	p.Symbols = append(p.Symbols, StringSymbol(s))
	return SymbolRef(len(p.Symbols) - 1)
}

// Emit appends instructions to the program
func (p *Program) Emit(insts ...Inst) {
	p.Insts = append(p.Insts, insts...)
}
