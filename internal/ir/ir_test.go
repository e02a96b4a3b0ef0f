package ir

import "testing"

func TestRegisterEncodingParts(t *testing.T) {
	for r := Ax; r <= R15; r++ {
		if got := r.Low3(); got != r.Ordinal()%8 {
			t.Errorf("%s: Low3() = %d, want %d", r, got, r.Ordinal()%8)
		}
		if got, want := r.Extended(), r.Ordinal() >= 8; got != want {
			t.Errorf("%s: Extended() = %v, want %v", r, got, want)
		}
	}
	if Register(16).Valid() {
		t.Error("ordinal 16 must not be valid")
	}
}

func TestRegisterNames(t *testing.T) {
	tests := []struct {
		r    Register
		t    RegisterType
		want string
	}{
		{Di, QuadWord, "rdi"},
		{Si, Byte, "sil"},
		{Dx, Word, "dx"},
		{Ax, DoubleWord, "eax"},
		{R9, Byte, "r9b"},
		{R15, DoubleWord, "r15d"},
		{Register(20), QuadWord, "reg20"},
	}
	for _, tt := range tests {
		if got := tt.r.Name(tt.t); got != tt.want {
			t.Errorf("Name(%d, %s) = %q, want %q", tt.r.Ordinal(), tt.t, got, tt.want)
		}
	}
}

func TestRegisterTypeSize(t *testing.T) {
	want := map[RegisterType]int{Byte: 1, Word: 2, DoubleWord: 4, QuadWord: 8}
	for typ, size := range want {
		if typ.Size() != size {
			t.Errorf("%s.Size() = %d, want %d", typ, typ.Size(), size)
		}
		if typ.Bits() != size*8 {
			t.Errorf("%s.Bits() = %d", typ, typ.Bits())
		}
	}
}

func TestProgramBuilding(t *testing.T) {
	var p Program
	first := p.AddString("hello")
	second := p.AddString("world")
	p.Emit(LoadSymbol{Register: Si, Symbol: second}, Syscall{Name: SysExit})

	if first != 0 || second != 1 {
		t.Errorf("refs = %v, %v", first, second)
	}
	if len(p.Insts) != 2 {
		t.Fatalf("got %d instructions", len(p.Insts))
	}
	if got := p.Insts[0].String(); got != "mov rsi, sym#1" {
		t.Errorf("String() = %q", got)
	}
	if got := string(p.Symbols[1].Bytes()); got != "world" {
		t.Errorf("symbol bytes = %q", got)
	}
}

func TestSyscallNumbers(t *testing.T) {
	if SysWrite.Number() != 1 || SysExit.Number() != 0x3c {
		t.Errorf("write=%d exit=%d", SysWrite.Number(), SysExit.Number())
	}
	if got := (LoadImm{Register: Dx, Type: QuadWord, Imm: 14}).String(); got != "mov rdx, 0xe" {
		t.Errorf("String() = %q", got)
	}
}
