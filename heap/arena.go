package heap

import (
	"fmt"

	"github.com/emberheap/emberheap/internal/memlayout"
	"github.com/emberheap/emberheap/pkg/reclaim"
)

// endMarker is the sentinel stored in a free region's next-offset field
// to mean "no further region". It must sort above every real offset so
// the ascending-offset walk in freeRaw terminates correctly; real
// arenas are nowhere near 4 GiB, so the maximum uint32 value is safe to
// reserve.
const endMarker uint32 = ^uint32(0)

// Ptr is an opaque offset into an Arena's backing region. Its zero
// value never denotes a live allocation (the reserved anchor prefix
// occupies offset 0, and the usable area begins at Config.Alignment),
// so Ptr(0) doubles as the "no pointer" / "none" value returned for
// zero-size requests and failed recoverable allocations.
type Ptr uintptr

// FatalHandler receives the error an exhausted AllocFatal call would
// otherwise be unable to recover from. The embedding host is expected
// to terminate; the default implementation panics rather than guessing
// at a termination mechanism.
type FatalHandler interface {
	Fatal(err error)
}

type panicFatalHandler struct{}

func (panicFatalHandler) Fatal(err error) {
	panic(err)
}

// Arena is a fixed-capacity, single-arena free-list heap. It is not
// safe for concurrent use; callers embedding it in a multi-threaded
// host must serialize access externally.
type Arena struct {
	cfg     Config
	layout  layout
	backing backingStore

	allocatedBytes int
	limit          int
	skipHint       uint32 // offset of a real free node, or 0 for the anchor

	reclaimers *reclaim.Registry
	fatal      FatalHandler

	stats *Stats
}

// New constructs an Arena and writes its initial single free region
// covering the whole usable area.
func New(cfg Config) (*Arena, error) {
	lay, err := resolveLayout(&cfg)
	if err != nil {
		return nil, err
	}

	var backing backingStore
	if cfg.GuardPages {
		backing, err = newDebugBacking(lay.heapSize)
	} else {
		backing = newSliceBacking(lay.heapSize)
	}
	if err != nil {
		return nil, fmt.Errorf("heap: %w", err)
	}

	fatal := cfg.FatalHandler
	if fatal == nil {
		fatal = panicFatalHandler{}
	}

	a := &Arena{
		cfg:        cfg,
		layout:     lay,
		backing:    backing,
		limit:      lay.desiredLimit,
		skipHint:   0,
		reclaimers: cfg.Reclaimers,
		fatal:      fatal,
	}

	if cfg.StatsEnabled {
		a.stats = newStats(lay.areaSize)
	}

	data := a.backing.Bytes()
	memlayout.WriteHeader(data, 0, 0, uint32(lay.alignment))
	memlayout.WriteHeader(data, lay.alignment, uint32(lay.areaSize), endMarker)

	logTrace("heap.New", "heap_size", lay.heapSize, "alignment", lay.alignment, "area_size", lay.areaSize)

	return a, nil
}

// Close finalizes the arena. It requires every allocation to have
// already been freed.
func (a *Arena) Close() error {
	if a.allocatedBytes != 0 {
		return fmt.Errorf("%w: %d bytes still live", ErrNotClosable, a.allocatedBytes)
	}
	return a.backing.Close()
}

// Contains reports whether ptr falls within this arena's usable area.
// It is the Go analogue of the debug-only jmem_is_heap_pointer, exposed
// unconditionally since Go has no separate assert-only build mode.
func (a *Arena) Contains(ptr Ptr) bool {
	off := uint32(ptr)
	return off >= uint32(a.layout.alignment) && off < uint32(a.layout.heapSize)
}

// AllocatedBytes returns the sum of the aligned sizes of every
// currently live allocation.
func (a *Arena) AllocatedBytes() int { return a.allocatedBytes }

// Limit returns the current soft pressure limit.
func (a *Arena) Limit() int { return a.limit }
