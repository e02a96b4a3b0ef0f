package elf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/xyproto/tacet/internal/build"
	"github.com/xyproto/tacet/internal/engine"
)

// Output is where an executable is written. *os.File satisfies it.
type Output interface {
	io.Writer
	io.Seeker
	Truncate(size int64) error
}

// Emitter serializes an Assembly as a static ELF64 executable with
// one PT_LOAD segment for code and one for data.
type Emitter struct {
	out Output
}

func NewEmitter(out Output) *Emitter {
	return &Emitter{out: out}
}

type segment struct {
	name    string
	flags   ProgFlags
	info    build.SegmentInfo
	payload []byte
}

func segments(asm *build.Assembly) [2]segment {
	return [2]segment{
		{"code", FlagRead.With(FlagExecute), asm.CodeInfo, asm.Code},
		{"data", FlagRead, asm.DataInfo, asm.Data},
	}
}

// Validate checks that asm can be represented as an executable without
// writing anything.
func Validate(asm *build.Assembly) error {
	if asm == nil {
		return engine.ArgumentError("emit", engine.ErrNoAssembly)
	}
	segs := segments(asm)
	for _, s := range segs {
		size := uint64(len(s.payload))
		if s.info.Offset < headersEnd {
			return engine.RangeError(
				fmt.Sprintf("%s segment at file offset %#x overlaps the headers ending at %#x", s.name, s.info.Offset, headersEnd),
				engine.ErrSegmentOverlap)
		}
		if s.info.Offset > math.MaxInt64-size {
			return engine.RangeError(
				fmt.Sprintf("%s segment of %d bytes at file offset %#x", s.name, size, s.info.Offset),
				engine.ErrFieldOverflow)
		}
		if s.info.VirtualAddress > math.MaxUint64-s.info.MemorySize {
			return engine.RangeError(
				fmt.Sprintf("%s segment of %d bytes at address %#x", s.name, s.info.MemorySize, s.info.VirtualAddress),
				engine.ErrFieldOverflow)
		}
		if s.info.MemorySize < size {
			return engine.RangeError(
				fmt.Sprintf("%s segment memory size %d is below its file size %d", s.name, s.info.MemorySize, size),
				engine.ErrFieldOverflow)
		}
		if s.info.Offset%pageSize != s.info.VirtualAddress%pageSize {
			return engine.RangeError(
				fmt.Sprintf("%s segment offset %#x and address %#x differ modulo %#x", s.name, s.info.Offset, s.info.VirtualAddress, pageSize),
				engine.ErrUnalignedLayout)
		}
	}
	code, data := segs[0], segs[1]
	if overlaps(code.info.Offset, uint64(len(code.payload)), data.info.Offset, uint64(len(data.payload))) {
		return engine.RangeError(
			fmt.Sprintf("code [%#x,+%d) and data [%#x,+%d) share file bytes",
				code.info.Offset, len(code.payload), data.info.Offset, len(data.payload)),
			engine.ErrSegmentOverlap)
	}
	if overlaps(code.info.VirtualAddress, code.info.MemorySize, data.info.VirtualAddress, data.info.MemorySize) {
		return engine.RangeError(
			fmt.Sprintf("code [%#x,+%d) and data [%#x,+%d) share addresses",
				code.info.VirtualAddress, code.info.MemorySize, data.info.VirtualAddress, data.info.MemorySize),
			engine.ErrSegmentOverlap)
	}
	return nil
}

func overlaps(a, alen, b, blen uint64) bool {
	if alen == 0 || blen == 0 {
		return false
	}
	return a < b+blen && b < a+alen
}

// Headers returns the file header followed by both program headers.
func Headers(asm *build.Assembly) ([]byte, error) {
	if err := Validate(asm); err != nil {
		return nil, err
	}

	w := &BufferWrapper{buf: bytes.NewBuffer(make([]byte, 0, headersEnd))}

	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "ELF header:")
	}
	fh := FileHeader{
		Type:             TypeExec,
		Machine:          MachineX86_64,
		Entry:            asm.Entry(),
		ProgHeaderOffset: progHeaderOffset,
		ProgHeaderCount:  progHeaderCount,
	}
	fh.encode(w)

	for _, s := range segments(asm) {
		if engine.VerboseMode {
			fmt.Fprintf(os.Stderr, "\n%s program header:", s.name)
		}
		ph := ProgHeader{
			Type:            ProgLoad,
			Flags:           s.flags,
			Offset:          s.info.Offset,
			VirtualAddress:  s.info.VirtualAddress,
			PhysicalAddress: s.info.PhysicalAddress,
			FileSize:        uint64(len(s.payload)),
			MemorySize:      s.info.MemorySize,
			Align:           pageSize,
		}
		ph.encode(w)
	}
	if engine.VerboseMode {
		fmt.Fprintln(os.Stderr)
	}

	if err := checkHeadersLength(w.buf.Len()); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

func checkHeadersLength(n int) error {
	if n != headersEnd {
		return engine.RangeError(fmt.Sprintf("headers are %d bytes, expected %d", n, headersEnd), engine.ErrFieldOverflow)
	}
	return nil
}

// Emit writes the executable from the start of the output, replacing any
// previous content. All checks run before the first write.
func (e *Emitter) Emit(asm *build.Assembly) error {
	headers, err := Headers(asm)
	if err != nil {
		return err
	}
	if e.out == nil {
		return engine.IOError("emit", errors.New("no output"))
	}

	if _, err := e.out.Seek(0, io.SeekStart); err != nil {
		return engine.IOError("seeking to the start of the output", err)
	}
	if err := e.out.Truncate(0); err != nil {
		return engine.IOError("truncating the output", err)
	}
	if _, err := e.out.Write(headers); err != nil {
		return engine.IOError("writing ELF headers", err)
	}

	for _, s := range segments(asm) {
		if engine.VerboseMode {
			fmt.Fprintf(os.Stderr, "Writing %s segment: %d bytes at offset %#x (%s, vaddr %#x)\n",
				s.name, len(s.payload), s.info.Offset, s.flags, s.info.VirtualAddress)
		}
		if _, err := e.out.Seek(int64(s.info.Offset), io.SeekStart); err != nil {
			return engine.IOError(fmt.Sprintf("seeking to the %s segment at %#x", s.name, s.info.Offset), err)
		}
		if _, err := e.out.Write(s.payload); err != nil {
			return engine.IOError(fmt.Sprintf("writing the %s segment", s.name), err)
		}
	}
	return nil
}
