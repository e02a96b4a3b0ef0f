// Completion: 100% - Utility module complete
package elf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/xyproto/tacet/internal/engine"
)

// BufferWrapper serializes header fields in little-endian order
type BufferWrapper struct {
	buf *bytes.Buffer
}

func (bw *BufferWrapper) Write(b byte) int {
	bw.buf.WriteByte(b)
	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, " %x", b)
	}
	return 1
}

func (bw *BufferWrapper) WriteN(b byte, n int) int {
	for i := 0; i < n; i++ {
		bw.Write(b)
	}
	return n
}

func (bw *BufferWrapper) Write2(v uint16) int {
	return bw.WriteBytes(binary.LittleEndian.AppendUint16(nil, v))
}

func (bw *BufferWrapper) Write4(v uint32) int {
	return bw.WriteBytes(binary.LittleEndian.AppendUint32(nil, v))
}

func (bw *BufferWrapper) Write8(v uint64) int {
	return bw.WriteBytes(binary.LittleEndian.AppendUint64(nil, v))
}

func (bw *BufferWrapper) WriteBytes(bs []byte) int {
	bw.buf.Write(bs)
	if engine.VerboseMode {
		for _, b := range bs {
			fmt.Fprintf(os.Stderr, " %x", b)
		}
	}
	return len(bs)
}
