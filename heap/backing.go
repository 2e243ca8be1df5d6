package heap

// backingStore owns the raw bytes an Arena allocates out of. The
// default implementation is a plain Go slice; Config.GuardPages swaps
// in a platform-specific implementation (debug_unix.go, debug_windows.go,
// debug_other.go) that flanks the arena with inaccessible redzone pages,
// catching gross out-of-bounds Ptr arithmetic.
//
// Protecting individual freed regions was considered and rejected: the
// free-list walk itself has to read the header of every free region, so
// mprotect'ing one to PROT_NONE would fault the allocator, not just a
// stray caller. Redzones around the whole arena are the sound subset of
// that idea.
type backingStore interface {
	// Bytes returns the full backing region, including the reserved
	// anchor prefix.
	Bytes() []byte

	// Protect marks backing[off:off+length] as writable or, when
	// writable is false, as inaccessible. It is not called anywhere on
	// the allocation/free hot path — see the type doc — and exists for
	// tests and callers that want to poison a specific byte range
	// themselves. Implementations that cannot offer real protection
	// (the default slice backing, and the fallback debug_other.go
	// covers) treat this as a no-op.
	Protect(off, length int, writable bool) error

	// Close releases any OS resources held by the backing store.
	Close() error
}

// sliceBacking is the default backingStore: a single Go byte slice
// with no access control beyond Go's own bounds checking.
type sliceBacking struct {
	data []byte
}

func newSliceBacking(size int) *sliceBacking {
	return &sliceBacking{data: make([]byte, size)}
}

func (s *sliceBacking) Bytes() []byte { return s.data }

func (s *sliceBacking) Protect(off, length int, writable bool) error { return nil }

func (s *sliceBacking) Close() error { return nil }
