package heap

// CompressedPtr is a narrow integer encoding of a Ptr, suitable for
// storage as an object field on hosts where a native pointer would be
// wasteful. Only the low Config.HeapOffsetLog bits are ever
// significant; callers should not rely on the width of the Go type
// itself as the contract.
//
// NullCP is the reserved value meaning "no pointer". It is always
// zero: the arena's anchor prefix occupies offset zero, so offset zero
// can never be a real, compressible in-area pointer.
type CompressedPtr uint32

// NullCP is the reserved CompressedPtr value meaning "no pointer".
const NullCP CompressedPtr = 0

// Compress packs ptr into its narrow offset form. It fails if ptr is
// the arena-null value, does not belong to this arena, or is not
// aligned to Config.Alignment.
func (a *Arena) Compress(ptr Ptr) (CompressedPtr, error) {
	if ptr == 0 {
		return NullCP, ErrNullPointer
	}
	if !a.Contains(ptr) {
		return NullCP, ErrForeignPointer
	}
	off := uint32(ptr)
	if off%uint32(a.layout.alignment) != 0 {
		return NullCP, ErrForeignPointer
	}

	value := off >> uint32(a.layout.alignmentLog)
	return CompressedPtr(value), nil
}

// Decompress is the inverse of Compress. It fails on the NullCP
// sentinel.
func (a *Arena) Decompress(cp CompressedPtr) (Ptr, error) {
	if cp == NullCP {
		return 0, ErrNullOffset
	}
	off := uint32(cp) << uint32(a.layout.alignmentLog)
	return Ptr(off), nil
}
