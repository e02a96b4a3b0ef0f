package main

import "github.com/xyproto/tacet/internal/ir"

const greeting = "hello, world!\n"

// helloProgram writes the greeting to stdout and exits with status 0
func helloProgram() *ir.Program {
	var p ir.Program
	msg := p.AddString(greeting)
	p.Emit(
		ir.LoadImm{Register: ir.Di, Type: ir.QuadWord, Imm: 1}, // stdout
		ir.LoadSymbol{Register: ir.Si, Symbol: msg},
		ir.LoadImm{Register: ir.Dx, Type: ir.QuadWord, Imm: uint64(len(greeting))},
		ir.Syscall{Name: ir.SysWrite},
		ir.LoadImm{Register: ir.Di, Type: ir.QuadWord, Imm: 0},
		ir.Syscall{Name: ir.SysExit},
	)
	return &p
}
