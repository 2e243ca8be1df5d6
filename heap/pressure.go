package heap

import (
	"github.com/emberheap/emberheap/internal/memlayout"
	"github.com/emberheap/emberheap/pkg/reclaim"
)

// Alloc requests size bytes, rounded up to Config.Alignment, running
// the pressure controller's reclamation escalation on exhaustion. It
// reports false instead of panicking when every attempt fails.
func (a *Arena) Alloc(size int) (Ptr, bool) {
	if size <= 0 {
		return 0, false
	}
	off, ok := a.allocWithReclaim(size)
	if !ok {
		return 0, false
	}
	return Ptr(off), true
}

// AllocFatal is Alloc's non-recoverable counterpart: it calls the
// Arena's FatalHandler instead of returning false. A zero-size request
// is a successful no-op on every alloc variant, never a reason to
// terminate, so it returns Ptr(0) directly rather than falling through
// to Alloc and mistaking it for exhaustion.
func (a *Arena) AllocFatal(size int) Ptr {
	if size <= 0 {
		return 0
	}
	ptr, ok := a.Alloc(size)
	if !ok {
		a.fatal.Fatal(&FatalError{Err: ErrOutOfMemory})
		return 0
	}
	return ptr
}

// allocWithReclaim implements the pressure controller's escalation: an
// optional reclaim-before-every-alloc at high severity, a low severity
// nudge as soon as the request would cross the soft limit, then — if
// the free list is still exhausted — exactly two more retries, one at
// low severity and one at high, before giving up.
func (a *Arena) allocWithReclaim(size int) (uint32, bool) {
	required := memlayout.AlignUp(size, a.layout.alignment)

	if a.cfg.ReclaimBeforeEveryAlloc {
		a.runReclaimers(reclaim.SeverityHigh)
	}

	if a.allocatedBytes+size >= a.limit {
		a.runReclaimers(reclaim.SeverityLow)
	}

	off, iterations, ok := a.allocRaw(required)
	if ok {
		a.stats.recordAlloc(size, required, iterations)
		logTrace("heap.Alloc", "size", size, "off", off, "iterations", iterations)
		return off, true
	}

	for _, severity := range [...]reclaim.Severity{reclaim.SeverityLow, reclaim.SeverityHigh} {
		a.runReclaimers(severity)

		off, iterations, ok = a.allocRaw(required)
		if ok {
			a.stats.recordAlloc(size, required, iterations)
			logTrace("heap.Alloc", "size", size, "off", off, "iterations", iterations, "reclaimed_at", severity)
			return off, true
		}
	}

	logTrace("heap.Alloc", "size", size, "exhausted", true)
	return 0, false
}

func (a *Arena) runReclaimers(sev reclaim.Severity) {
	a.reclaimers.Run(sev)
}

// Free returns the alignment-rounded region starting at ptr to the
// free list. size must be the same value originally passed to Alloc;
// the arena does not store allocated-region sizes anywhere, so a wrong
// size silently corrupts the free list instead of erroring.
func (a *Arena) Free(ptr Ptr, size int) {
	if ptr == 0 || size <= 0 {
		return
	}
	required := uint32(memlayout.AlignUp(size, a.layout.alignment))
	usedSkip, iterations := a.freeRaw(uint32(ptr), required)
	a.stats.recordFree(size, int(required), iterations, usedSkip)
	logTrace("heap.Free", "ptr", ptr, "size", size, "iterations", iterations, "used_skip", usedSkip)
}
