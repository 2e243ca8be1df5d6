package memlayout

import "encoding/binary"

// U32LE reads a little-endian uint32 from b at the given offset.
// Panics if the read would run past the end of b — callers own bounds
// checking against arena geometry before calling, the same contract
// the free-list engine holds over every header access.
func U32LE(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU32LE writes v as a little-endian uint32 into b at the given offset.
func PutU32LE(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// HeaderSize is the in-band size of a free-region descriptor: one
// size word followed by one next-offset word.
const HeaderSize = 8

// ReadHeader reads the (size, nextOffset) pair stored at the start of
// the free region at b[off:].
func ReadHeader(b []byte, off int) (size, nextOffset uint32) {
	return U32LE(b, off), U32LE(b, off+4)
}

// WriteHeader writes the (size, nextOffset) pair at the start of the
// free region at b[off:].
func WriteHeader(b []byte, off int, size, nextOffset uint32) {
	PutU32LE(b, off, size)
	PutU32LE(b, off+4, nextOffset)
}
