// Completion: 100% - Module complete
package build

import (
	"fmt"
	"math"
	"os"

	"github.com/xyproto/tacet/internal/engine"
	"github.com/xyproto/tacet/internal/ir"
	"github.com/xyproto/tacet/internal/x86"
)

// symbolTable maps a SymbolRef to its resolved virtual address
type symbolTable []uint64

func (s symbolTable) Address(ref ir.SymbolRef) (uint64, bool) {
	if ref < 0 || int(ref) >= len(s) {
		return 0, false
	}
	return s[ref], true
}

// Builder lays a Program out into a code and a data segment.
// It stores all symbols first, so every instruction sees every symbol address.
type Builder struct {
	layout  Layout
	code    *segmentBuffer
	data    *segmentBuffer
	symbols symbolTable
}

// NewBuilder returns a builder using DefaultLayout
func NewBuilder() *Builder {
	return NewBuilderWithLayout(DefaultLayout())
}

// NewBuilderWithLayout returns a builder placing segments according to layout
func NewBuilderWithLayout(layout Layout) *Builder {
	return &Builder{layout: layout}
}

// Layout returns the segment placement used by Build
func (b *Builder) Layout() Layout {
	return b.layout
}

// Build runs the symbol pass and then the instruction pass over p
func (b *Builder) Build(p *ir.Program) (*Assembly, error) {
	if p == nil {
		return nil, engine.ArgumentError("no program given", engine.ErrInvalidOperand)
	}
	if err := b.layout.Validate(); err != nil {
		return nil, err
	}

	b.code = newSegmentBuffer("code")
	b.data = newSegmentBuffer("data")
	symbols := make(symbolTable, 0, len(p.Symbols))

	for i, symbol := range p.Symbols {
		addr, err := b.storeSymbol(i, symbol)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, addr)
	}
	b.data.Commit()

	enc := x86.NewEncoder(symbols)
	for i, inst := range p.Insts {
		if err := b.writeInst(enc, i, inst); err != nil {
			return nil, err
		}
	}
	if size := uint64(b.code.Len()); size > b.layout.codeCapacity() {
		return nil, engine.RangeError(fmt.Sprintf("code segment is %d bytes but only %d fit before the data segment",
			size, b.layout.codeCapacity()), engine.ErrSegmentOverlap)
	}
	b.code.Commit()
	b.symbols = symbols

	asm := &Assembly{
		Code: b.code.Bytes(),
		Data: b.data.Bytes(),
		CodeInfo: SegmentInfo{
			Offset:          b.layout.CodeOffset,
			VirtualAddress:  b.layout.CodeAddress,
			PhysicalAddress: b.layout.CodeAddress,
			MemorySize:      uint64(b.code.Len()),
		},
		DataInfo: SegmentInfo{
			Offset:          b.layout.DataOffset,
			VirtualAddress:  b.layout.DataAddress,
			PhysicalAddress: b.layout.DataAddress,
			MemorySize:      uint64(b.data.Len()),
		},
	}

	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "=== Layout ===\n")
		fmt.Fprintf(os.Stderr, "  code: offset=0x%x addr=0x%x size=%d\n", asm.CodeInfo.Offset, asm.CodeInfo.VirtualAddress, asm.CodeInfo.MemorySize)
		fmt.Fprintf(os.Stderr, "  data: offset=0x%x addr=0x%x size=%d\n", asm.DataInfo.Offset, asm.DataInfo.VirtualAddress, asm.DataInfo.MemorySize)
	}
	return asm, nil
}

// SymbolAddresses returns the addresses resolved by the last successful Build,
// in declaration order
func (b *Builder) SymbolAddresses() []uint64 {
	return append([]uint64(nil), b.symbols...)
}

// storeSymbol appends symbol to the data segment and returns its address
func (b *Builder) storeSymbol(i int, symbol ir.Symbol) (uint64, error) {
	if symbol == nil {
		return 0, engine.ArgumentError(fmt.Sprintf("symbol %d is nil", i), engine.ErrInvalidOperand)
	}
	raw := symbol.Bytes()

	base := b.layout.DataAddress
	offset := uint64(b.data.Len())
	if offset+uint64(len(raw)) > math.MaxUint64-base {
		return 0, engine.RangeError(fmt.Sprintf("symbol %d does not fit in the address space", i), engine.ErrFieldOverflow)
	}
	addr := base + offset
	b.data.Write(raw)

	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "symbol %d: 0x%x (%d bytes)\n", i, addr, len(raw))
	}
	return addr, nil
}

func (b *Builder) writeInst(enc *x86.Encoder, i int, inst ir.Inst) error {
	code, err := enc.Encode(inst)
	if err != nil {
		return fmt.Errorf("instruction %d (%v): %w", i, inst, err)
	}
	b.code.Write(code)
	return nil
}
