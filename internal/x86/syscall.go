// Completion: 100% - Platform-specific module complete
package x86

import "github.com/xyproto/tacet/internal/ir"

const opSyscall = 0x05 // 0F 05

// SyscallTrap is the bare syscall instruction
func SyscallTrap() Instruction {
	return Instruction{Escape: EscapeSecondary, Opcode: opSyscall}
}

// Syscall loads the syscall number into eax (zero extending into rax) and traps.
// The arguments are expected in rdi, rsi, rdx, r10, r8, r9.
func Syscall(name ir.SyscallName) ([]Instruction, error) {
	load, err := MovImm(ir.Ax, ir.DoubleWord, uint64(name.Number()))
	if err != nil {
		return nil, err
	}
	return []Instruction{load, SyscallTrap()}, nil
}
