// Completion: 100% - Module complete
package build

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xyproto/tacet/internal/engine"
)

// segmentBuffer accumulates the bytes of one segment. Once committed, the
// segment size has been published and further writes are a bug.
type segmentBuffer struct {
	buf       bytes.Buffer
	committed bool
	name      string
}

func newSegmentBuffer(name string) *segmentBuffer {
	return &segmentBuffer{name: name}
}

// Write appends bytes to the buffer. Panics if the buffer is committed.
func (sb *segmentBuffer) Write(p []byte) (int, error) {
	if sb.committed {
		panic(fmt.Sprintf("segmentBuffer(%s): cannot write to committed buffer", sb.name))
	}
	return sb.buf.Write(p)
}

func (sb *segmentBuffer) Len() int {
	return sb.buf.Len()
}

// Bytes returns a copy of the contents
func (sb *segmentBuffer) Bytes() []byte {
	return bytes.Clone(sb.buf.Bytes())
}

// Commit marks the segment as complete
func (sb *segmentBuffer) Commit() {
	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "segment %s: committed with %d bytes\n", sb.name, sb.buf.Len())
	}
	sb.committed = true
}

func (sb *segmentBuffer) IsCommitted() bool {
	return sb.committed
}
