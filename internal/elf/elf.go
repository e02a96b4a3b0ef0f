// Completion: 100% - Platform support complete
package elf

import "fmt"

const (
	// ELF structure sizes
	elfHeaderSize  = 64 // ELF64 header size
	progHeaderSize = 56 // Program header entry size (ELF64)

	// Program header offset (immediately after ELF header)
	progHeaderOffset = 0x40 // elfHeaderSize

	// One PT_LOAD for code, one for data
	progHeaderCount = 2

	// First byte after the program header table
	headersEnd = progHeaderOffset + progHeaderCount*progHeaderSize

	pageSize = 0x1000
)

// Identification bytes
const (
	classELF64    = 2
	dataLittle    = 1
	identVersion  = 1
	osABISystemV  = 0
	abiVersion    = 0
	identPadding  = 7
	objectVersion = 1
)

var magic = [4]byte{0x7f, 'E', 'L', 'F'}

// FileType is e_type
type FileType uint16

const (
	TypeNone FileType = 0
	TypeRel  FileType = 1
	TypeExec FileType = 2
	TypeDyn  FileType = 3
)

// Machine is e_machine
type Machine uint16

const MachineX86_64 Machine = 0x3E

// ProgType is p_type
type ProgType uint32

const (
	ProgNull ProgType = 0
	ProgLoad ProgType = 1
)

// ProgFlags is p_flags, a bit set of segment permissions
type ProgFlags uint32

const (
	FlagExecute ProgFlags = 1 << iota
	FlagWrite
	FlagRead
)

// Has reports whether all bits of f are set
func (p ProgFlags) Has(f ProgFlags) bool {
	return p&f == f
}

// With returns p with the bits of f set
func (p ProgFlags) With(f ProgFlags) ProgFlags {
	return p | f
}

func (p ProgFlags) String() string {
	s := []byte("---")
	if p.Has(FlagRead) {
		s[0] = 'r'
	}
	if p.Has(FlagWrite) {
		s[1] = 'w'
	}
	if p.Has(FlagExecute) {
		s[2] = 'x'
	}
	if rest := p &^ (FlagRead | FlagWrite | FlagExecute); rest != 0 {
		return fmt.Sprintf("%s|%#x", s, uint32(rest))
	}
	return string(s)
}

// FileHeader holds the ELF64 header fields that vary. The identification
// bytes and the structure sizes are fixed.
type FileHeader struct {
	Type                FileType
	Machine             Machine
	Entry               uint64
	ProgHeaderOffset    uint64
	SectionHeaderOffset uint64
	Flags               uint32
	ProgHeaderCount     uint16
	SectionHeaderSize   uint16
	SectionHeaderCount  uint16
	SectionNameIndex    uint16
}

func (h *FileHeader) encode(w *BufferWrapper) {
	w.WriteBytes(magic[:])
	w.Write(classELF64)
	w.Write(dataLittle)
	w.Write(identVersion)
	w.Write(osABISystemV)
	w.Write(abiVersion)
	w.WriteN(0, identPadding)

	w.Write2(uint16(h.Type))
	w.Write2(uint16(h.Machine))
	w.Write4(objectVersion)
	w.Write8(h.Entry)
	w.Write8(h.ProgHeaderOffset)
	w.Write8(h.SectionHeaderOffset)
	w.Write4(h.Flags)
	w.Write2(elfHeaderSize)
	w.Write2(progHeaderSize)
	w.Write2(h.ProgHeaderCount)
	w.Write2(h.SectionHeaderSize)
	w.Write2(h.SectionHeaderCount)
	w.Write2(h.SectionNameIndex)
}

// ProgHeader is one ELF64 program header entry
type ProgHeader struct {
	Type            ProgType
	Flags           ProgFlags
	Offset          uint64
	VirtualAddress  uint64
	PhysicalAddress uint64
	FileSize        uint64
	MemorySize      uint64
	Align           uint64
}

func (p *ProgHeader) encode(w *BufferWrapper) {
	w.Write4(uint32(p.Type))
	w.Write4(uint32(p.Flags))
	w.Write8(p.Offset)
	w.Write8(p.VirtualAddress)
	w.Write8(p.PhysicalAddress)
	w.Write8(p.FileSize)
	w.Write8(p.MemorySize)
	w.Write8(p.Align)
}
