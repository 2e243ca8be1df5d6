package heap

import (
	"fmt"

	"github.com/emberheap/emberheap/internal/memlayout"
	"github.com/emberheap/emberheap/pkg/reclaim"
)

// Config is the compile-time configuration of an Arena. Everything in
// it is resolved once at New and frozen for the Arena's lifetime —
// there is no dynamic heap growth.
type Config struct {
	// HeapSize is the total number of bytes the arena reserves,
	// including the ALIGNMENT-sized anchor prefix. Must be a multiple
	// of Alignment and strictly greater than it.
	HeapSize int

	// Alignment is the fixed alignment every allocation satisfies.
	// Must be a power of two and at least memlayout.HeaderSize, since
	// every free region must be able to hold its own in-band header.
	// Defaults to 8.
	Alignment int

	// HeapOffsetLog is the number of bits a compressed pointer may use.
	// 2^HeapOffsetLog must be >= HeapSize. Zero selects the smallest
	// value satisfying that bound.
	HeapOffsetLog int

	// DesiredLimit is the soft-limit hysteresis step the pressure
	// controller raises and lowers the allocation ceiling by. Zero
	// selects AreaSize/4.
	DesiredLimit int

	// StatsEnabled gates the Stats/ResetPeakStats/PrintStats surface.
	StatsEnabled bool

	// ReclaimBeforeEveryAlloc invokes every registered reclaimer at
	// SeverityHigh before every single allocation attempt, mirroring
	// JMEM_GC_BEFORE_EACH_ALLOC.
	ReclaimBeforeEveryAlloc bool

	// GuardPages backs the arena with an OS-mapped region flanked by an
	// inaccessible redzone page on each side, so Ptr arithmetic that
	// walks off either end of the arena faults. Freed ranges inside the
	// arena are not protected, so use-after-free is not detected. On
	// platforms without a guard-page implementation this is a no-op.
	// See debug_unix.go / debug_windows.go / debug_other.go.
	GuardPages bool

	// Reclaimers is the registry of external reclamation callbacks the
	// pressure controller dispatches to. Nil means no reclaimers are
	// ever invoked — allocation simply fails once the free list is
	// exhausted.
	Reclaimers *reclaim.Registry

	// FatalHandler receives the fatal error when AllocFatal exhausts
	// every retry. Nil installs a handler that panics.
	FatalHandler FatalHandler
}

// layout is Config after validation and default-resolution: every
// field the hot path needs is already computed, so neither Alloc nor
// Free recomputes alignment arithmetic.
type layout struct {
	heapSize      int
	alignment     int
	alignmentLog  int
	areaSize      int
	heapOffsetLog int
	desiredLimit  int
}

func resolveLayout(cfg *Config) (layout, error) {
	alignment := cfg.Alignment
	if alignment == 0 {
		alignment = 8
	}
	if !memlayout.IsPowerOfTwo(alignment) {
		return layout{}, fmt.Errorf("%w: alignment %d is not a power of two", ErrInvalidConfig, alignment)
	}
	if alignment < memlayout.HeaderSize {
		return layout{}, fmt.Errorf("%w: alignment %d is smaller than the %d-byte free-region header",
			ErrInvalidConfig, alignment, memlayout.HeaderSize)
	}

	if cfg.HeapSize <= alignment {
		return layout{}, fmt.Errorf("%w: heap size %d must exceed alignment %d", ErrInvalidConfig, cfg.HeapSize, alignment)
	}
	if cfg.HeapSize%alignment != 0 {
		return layout{}, fmt.Errorf("%w: heap size %d is not a multiple of alignment %d", ErrInvalidConfig, cfg.HeapSize, alignment)
	}

	areaSize := cfg.HeapSize - alignment

	heapOffsetLog := cfg.HeapOffsetLog
	minLog := 0
	for (1 << minLog) < cfg.HeapSize {
		minLog++
	}
	if heapOffsetLog == 0 {
		heapOffsetLog = minLog
	} else if (1 << heapOffsetLog) < cfg.HeapSize {
		return layout{}, fmt.Errorf("%w: 2^%d is smaller than heap size %d", ErrInvalidConfig, heapOffsetLog, cfg.HeapSize)
	}
	if heapOffsetLog > 32 {
		return layout{}, fmt.Errorf("%w: heap offset log %d exceeds 32 bits", ErrInvalidConfig, heapOffsetLog)
	}

	desiredLimit := cfg.DesiredLimit
	if desiredLimit == 0 {
		desiredLimit = areaSize / 4
	}
	if desiredLimit <= 0 {
		return layout{}, fmt.Errorf("%w: desired limit must be positive", ErrInvalidConfig)
	}

	return layout{
		heapSize:      cfg.HeapSize,
		alignment:     alignment,
		alignmentLog:  memlayout.Log2(alignment),
		areaSize:      areaSize,
		heapOffsetLog: heapOffsetLog,
		desiredLimit:  desiredLimit,
	}, nil
}
