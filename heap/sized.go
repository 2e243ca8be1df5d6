package heap

import "github.com/emberheap/emberheap/internal/memlayout"

// AllocSized is Alloc plus a self-describing length prefix. It costs
// one extra Config.Alignment-sized unit per allocation; FreeSized
// recovers size from that prefix so callers that can't otherwise track
// it don't have to.
func (a *Arena) AllocSized(size int) (Ptr, bool) {
	if size <= 0 {
		return 0, false
	}
	prefix := a.layout.alignment
	block, ok := a.Alloc(size + prefix)
	if !ok {
		return 0, false
	}

	memlayout.PutU32LE(a.backing.Bytes(), int(block), uint32(size))
	return Ptr(uint32(block) + uint32(prefix)), true
}

// FreeSized frees a region previously returned by AllocSized, reading
// its size back from the stored prefix instead of requiring the caller
// to pass it.
func (a *Arena) FreeSized(ptr Ptr) {
	if ptr == 0 {
		return
	}
	prefix := uint32(a.layout.alignment)
	blockOff := uint32(ptr) - prefix

	size := memlayout.U32LE(a.backing.Bytes(), int(blockOff))
	a.Free(Ptr(blockOff), int(size)+int(prefix))
}
