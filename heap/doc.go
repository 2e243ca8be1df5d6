// Package heap implements a fixed-capacity, single-arena free-list
// allocator for small embedded runtimes of a dynamic-language
// interpreter.
//
// # Overview
//
// An Arena owns one statically sized byte region and serves
// sub-allocation requests with strict alignment guarantees, compact
// offset-based internal pointers, and an explicit mechanism for
// notifying an embedder when memory pressure is rising so it may
// return unused memory (for example, by running garbage collection).
//
// # Components
//
//   - Free list: a sorted singly-linked list of free regions threaded
//     through the arena itself, with first-fit allocation, adjacent-block
//     coalescing on free, and a skip-ahead hint that shortens the linear
//     walk on free. Allocation keeps the hint up to date but always walks
//     from the head of the list.
//   - Pressure controller: tracks allocated bytes against a soft,
//     hysteresis-driven limit and invokes registered reclamation
//     callbacks at escalating severities when that limit is approached
//     or exceeded.
//   - Pointer codec: converts between full-width arena pointers and a
//     compact integer offset suitable for storage as an object field.
//
// # Usage
//
//	a, err := heap.New(heap.Config{HeapSize: 1 << 17})
//	if err != nil {
//	    return err
//	}
//	defer func() {
//	    if err := a.Close(); err != nil {
//	        panic(err)
//	    }
//	}()
//
//	ptr, ok := a.Alloc(24)
//	if !ok {
//	    // recover or report out of memory
//	}
//	a.Free(ptr, 24)
//
// # Thread Safety
//
// An Arena is not safe for concurrent use. Callers embedding it in a
// multi-threaded host must serialize access externally.
//
// # Related Packages
//
//   - github.com/emberheap/emberheap/pkg/reclaim: the reclamation
//     callback registry the pressure controller dispatches to.
//   - github.com/emberheap/emberheap/internal/memlayout: the byte-level
//     header codec and alignment arithmetic used internally.
package heap
