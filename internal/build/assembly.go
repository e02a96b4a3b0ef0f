package build

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// SegmentInfo says where a segment lands in the file and in memory
type SegmentInfo struct {
	Offset          uint64
	VirtualAddress  uint64
	PhysicalAddress uint64
	MemorySize      uint64
}

// Assembly is the builder output: the two segment payloads and their placement
type Assembly struct {
	Code []byte
	Data []byte

	CodeInfo SegmentInfo
	DataInfo SegmentInfo
}

// Entry returns the address execution starts at
func (a *Assembly) Entry() uint64 {
	return a.CodeInfo.VirtualAddress
}

// Digest returns a BLAKE2b-256 fingerprint of the payloads and their
// placement. Equal digests mean byte-identical executables.
func (a *Assembly) Digest() string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	for _, seg := range []struct {
		info    SegmentInfo
		payload []byte
	}{
		{a.CodeInfo, a.Code},
		{a.DataInfo, a.Data},
	} {
		var header [40]byte
		binary.LittleEndian.PutUint64(header[0:], seg.info.Offset)
		binary.LittleEndian.PutUint64(header[8:], seg.info.VirtualAddress)
		binary.LittleEndian.PutUint64(header[16:], seg.info.PhysicalAddress)
		binary.LittleEndian.PutUint64(header[24:], seg.info.MemorySize)
		binary.LittleEndian.PutUint64(header[32:], uint64(len(seg.payload)))
		h.Write(header[:])
		h.Write(seg.payload)
	}
	return hex.EncodeToString(h.Sum(nil))
}
