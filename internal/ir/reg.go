// Completion: 100% - Utility module complete
package ir

import "fmt"

// Register is one of the 16 x86-64 general purpose registers.
// The value is the hardware ordinal: the low three bits go in the opcode or
// ModRM byte and bit 3 goes in the REX prefix.
type Register uint8

const (
	Ax Register = iota
	Cx
	Dx
	Bx
	Sp
	Bp
	Si
	Di

	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

// NumRegisters is the size of the general purpose register file
const NumRegisters = 16

// Ordinal returns the hardware register number (0-15)
func (r Register) Ordinal() uint8 {
	return uint8(r)
}

// Low3 returns the register number modulo 8
func (r Register) Low3() uint8 {
	return uint8(r) & 7
}

// Extended reports whether the register needs a REX extension bit (r8-r15)
func (r Register) Extended() bool {
	return r >= R8
}

// Valid reports whether r names a general purpose register
func (r Register) Valid() bool {
	return r < NumRegisters
}

// register names per operand width, indexed by ordinal
var registerNames = [4][NumRegisters]string{
	Byte:       {"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil", "r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b"},
	Word:       {"ax", "cx", "dx", "bx", "sp", "bp", "si", "di", "r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w"},
	DoubleWord: {"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi", "r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d"},
	QuadWord:   {"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"},
}

// Name returns the assembler name of r at the given width, like "edi" or "r9b"
func (r Register) Name(t RegisterType) string {
	if !r.Valid() || !t.Valid() {
		return fmt.Sprintf("reg%d", uint8(r))
	}
	return registerNames[t][r]
}

func (r Register) String() string {
	return r.Name(QuadWord)
}

// RegisterType is an operand width
type RegisterType uint8

const (
	Byte       RegisterType = iota // 8-bit
	Word                           // 16-bit
	DoubleWord                     // 32-bit
	QuadWord                       // 64-bit
)

// Valid reports whether t is one of the four operand widths
func (t RegisterType) Valid() bool {
	return t <= QuadWord
}

// Size returns the operand width in bytes
func (t RegisterType) Size() int {
	return 1 << t
}

// Bits returns the operand width in bits
func (t RegisterType) Bits() int {
	return t.Size() * 8
}

func (t RegisterType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case DoubleWord:
		return "dword"
	case QuadWord:
		return "qword"
	default:
		return fmt.Sprintf("RegisterType(%d)", uint8(t))
	}
}
