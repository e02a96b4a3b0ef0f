package ir

import "fmt"

// Inst is one IR operation: LoadImm, LoadSymbol or Syscall
type Inst interface {
	fmt.Stringer
	isInst()
}

// LoadImm moves an immediate into a register at the given width
type LoadImm struct {
	Register Register
	Type     RegisterType
	Imm      uint64
}

// LoadSymbol moves the resolved address of a symbol into a register
type LoadSymbol struct {
	Register Register
	Symbol   SymbolRef
}

// Syscall loads the syscall number into rax and traps into the kernel.
// Arguments must already be in rdi, rsi, rdx (and so on).
type Syscall struct {
	Name SyscallName
}

func (LoadImm) isInst()    {}
func (LoadSymbol) isInst() {}
func (Syscall) isInst()    {}

func (i LoadImm) String() string {
	return fmt.Sprintf("mov %s, %#x", i.Register.Name(i.Type), i.Imm)
}

func (i LoadSymbol) String() string {
	return fmt.Sprintf("mov %s, %s", i.Register, i.Symbol)
}

func (i Syscall) String() string {
	return "syscall " + i.Name.String()
}

// SyscallName is a Linux x86-64 system call number
type SyscallName uint32

const (
	SysWrite SyscallName = 1
	SysExit  SyscallName = 60
)

// Number returns the value the kernel expects in rax
func (s SyscallName) Number() uint32 {
	return uint32(s)
}

func (s SyscallName) String() string {
	switch s {
	case SysWrite:
		return "write"
	case SysExit:
		return "exit"
	default:
		return fmt.Sprintf("syscall(%d)", uint32(s))
	}
}
