package build

import "testing"

func TestSegmentBufferBasicUsage(t *testing.T) {
	sb := newSegmentBuffer("test")

	sb.Write([]byte("hello"))
	if sb.Len() != 5 {
		t.Errorf("Expected length 5, got %d", sb.Len())
	}

	sb.Commit()
	if !sb.IsCommitted() {
		t.Error("Buffer should be committed")
	}
	if string(sb.Bytes()) != "hello" {
		t.Errorf("Expected 'hello', got '%s'", string(sb.Bytes()))
	}
}

func TestSegmentBufferPreventsWriteAfterCommit(t *testing.T) {
	sb := newSegmentBuffer("test")
	sb.Write([]byte("data"))
	sb.Commit()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when writing to committed buffer")
		}
	}()

	sb.Write([]byte("more"))
}

func TestSegmentBufferBytesIsACopy(t *testing.T) {
	sb := newSegmentBuffer("test")
	sb.Write([]byte("abc"))
	b := sb.Bytes()
	b[0] = 'x'
	if string(sb.Bytes()) != "abc" {
		t.Errorf("Bytes() aliases the buffer: %q", sb.Bytes())
	}
}
