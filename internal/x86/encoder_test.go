package x86

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/arch/x86/x86asm"

	"github.com/xyproto/tacet/internal/engine"
	"github.com/xyproto/tacet/internal/ir"
)

type addressTable []uint64

func (a addressTable) Address(ref ir.SymbolRef) (uint64, bool) {
	if ref < 0 || int(ref) >= len(a) {
		return 0, false
	}
	return a[ref], true
}

// TestEncodeSyscall checks the mov eax, imm32 + syscall pair
func TestEncodeSyscall(t *testing.T) {
	e := NewEncoder(nil)
	tests := []struct {
		name ir.SyscallName
		want []byte
	}{
		{ir.SysWrite, []byte{0xB8, 0x01, 0, 0, 0, 0x0F, 0x05}},
		{ir.SysExit, []byte{0xB8, 0x3C, 0, 0, 0, 0x0F, 0x05}},
	}
	for _, tt := range tests {
		got, err := e.Encode(ir.Syscall{Name: tt.name})
		if err != nil {
			t.Fatalf("Encode(%s) failed: %v", tt.name, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}

		mov, err := x86asm.Decode(got, 64)
		if err != nil || mov.Op != x86asm.MOV || mov.Args[0] != x86asm.EAX {
			t.Errorf("%s: first instruction decoded as %v (%v)", tt.name, mov, err)
			continue
		}
		trap, err := x86asm.Decode(got[mov.Len:], 64)
		if err != nil || trap.Op != x86asm.SYSCALL {
			t.Errorf("%s: second instruction decoded as %v (%v)", tt.name, trap, err)
		}
	}
}

func TestEncodeLoadSymbol(t *testing.T) {
	e := NewEncoder(addressTable{0x402000, 0x40200e})
	got, err := e.Encode(ir.LoadSymbol{Register: ir.Si, Symbol: 1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{0x48, 0xBE, 0x0E, 0x20, 0x40, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// Identical to a 64-bit LoadImm of the address
	imm, err := e.Encode(ir.LoadImm{Register: ir.Si, Type: ir.QuadWord, Imm: 0x40200e})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if diff := cmp.Diff(imm, got); diff != "" {
		t.Errorf("LoadSymbol differs from LoadImm (-imm +sym):\n%s", diff)
	}
}

func TestEncodeUndefinedSymbol(t *testing.T) {
	for _, e := range []*Encoder{NewEncoder(nil), NewEncoder(addressTable{0x402000})} {
		_, err := e.Encode(ir.LoadSymbol{Register: ir.Si, Symbol: 3})
		if !errors.Is(err, engine.ErrUndefinedSymbol) {
			t.Errorf("expected ErrUndefinedSymbol, got %v", err)
		}
		if c, _ := engine.CategoryOf(err); c != engine.CategoryReference {
			t.Errorf("expected a reference error, got %v", c)
		}
	}
}

func TestEncodeNilInstruction(t *testing.T) {
	_, err := NewEncoder(nil).Encode(nil)
	if !errors.Is(err, engine.ErrInvalidOperand) {
		t.Errorf("expected ErrInvalidOperand, got %v", err)
	}
}

func TestLowerCounts(t *testing.T) {
	e := NewEncoder(addressTable{0x402000})
	tests := []struct {
		inst ir.Inst
		want int
	}{
		{ir.LoadImm{Register: ir.Di, Type: ir.QuadWord, Imm: 1}, 1},
		{ir.LoadSymbol{Register: ir.Si, Symbol: 0}, 1},
		{ir.Syscall{Name: ir.SysWrite}, 2},
	}
	for _, tt := range tests {
		got, err := e.Lower(tt.inst)
		if err != nil {
			t.Fatalf("Lower(%s) failed: %v", tt.inst, err)
		}
		if len(got) != tt.want {
			t.Errorf("Lower(%s) gave %d instructions, want %d", tt.inst, len(got), tt.want)
		}
		for _, ins := range got {
			if ins.ModRM != nil {
				t.Errorf("Lower(%s) produced a ModRM byte", tt.inst)
			}
		}
	}
}
