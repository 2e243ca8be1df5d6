package heap

import "github.com/emberheap/emberheap/internal/memlayout"

// allocRaw satisfies a single aligned request against the free list and
// maintains the allocated-bytes counter and the soft limit's hysteresis
// ratchet. It has no knowledge of reclamation callbacks — escalating
// those on exhaustion belongs to pressure.go. A single-unit fast path
// handles exactly-Alignment requests; everything else takes a general
// first-fit walk.
//
// required must already be aligned up to a.layout.alignment.
func (a *Arena) allocRaw(required int) (off uint32, iterations int, ok bool) {
	data := a.backing.Bytes()

	if required == a.layout.alignment {
		off, ok = a.allocFastPath(data)
		if ok {
			iterations = 1
		}
	} else {
		off, iterations, ok = a.allocGeneralPath(data, uint32(required))
	}

	if ok {
		a.allocatedBytes += required
		for a.allocatedBytes >= a.limit {
			a.limit += a.layout.desiredLimit
		}
	}

	return off, iterations, ok
}

// allocFastPath takes the first free region in the list when the
// request is exactly one alignment unit. Every free region is at least
// one alignment unit, so the first one is always large enough whenever
// the list is non-empty, and there is no walk.
func (a *Arena) allocFastPath(data []byte) (off uint32, ok bool) {
	_, anchorNext := memlayout.ReadHeader(data, 0)
	if anchorNext == endMarker {
		return 0, false
	}

	dataOff := anchorNext
	size, next := memlayout.ReadHeader(data, int(dataOff))

	var newFirst uint32
	if size == uint32(a.layout.alignment) {
		memlayout.WriteHeader(data, 0, 0, next)
		newFirst = next
	} else {
		remainingOff := dataOff + uint32(a.layout.alignment)
		memlayout.WriteHeader(data, int(remainingOff), size-uint32(a.layout.alignment), next)
		memlayout.WriteHeader(data, 0, 0, remainingOff)
		newFirst = remainingOff
	}

	if a.skipHint == dataOff {
		if newFirst == endMarker {
			newFirst = 0
		}
		a.skipHint = newFirst
	}

	return dataOff, true
}

// allocGeneralPath walks the list from the anchor, taking the first
// region whose size is at least required (first-fit).
func (a *Arena) allocGeneralPath(data []byte, required uint32) (off uint32, iterations int, ok bool) {
	prev := uint32(0)
	_, cur := memlayout.ReadHeader(data, 0)

	for cur != endMarker {
		iterations++
		size, next := memlayout.ReadHeader(data, int(cur))

		if size >= required {
			if size > required {
				remainingOff := cur + required
				memlayout.WriteHeader(data, int(remainingOff), size-required, next)
				a.relinkNext(data, prev, remainingOff)
			} else {
				a.relinkNext(data, prev, next)
			}

			a.skipHint = prev
			return cur, iterations, true
		}

		prev = cur
		cur = next
	}

	return 0, iterations, false
}

// relinkNext rewrites node's next-offset field while preserving its
// size field, whether node is a real free region or the anchor.
func (a *Arena) relinkNext(data []byte, node, next uint32) {
	size, _ := memlayout.ReadHeader(data, int(node))
	memlayout.WriteHeader(data, int(node), size, next)
}

// freeRaw reinserts a region at off, aligned to alignedSize bytes, into
// the free list, coalescing with a physically adjacent predecessor
// and/or successor. The walk starts from the skip-ahead hint when off
// lies past it, and from the anchor otherwise. The soft limit is lowered
// in DesiredLimit steps but never below DesiredLimit itself.
func (a *Arena) freeRaw(off uint32, alignedSize uint32) (usedSkip bool, iterations int) {
	data := a.backing.Bytes()

	usedSkip = off > a.skipHint

	var prev uint32
	if usedSkip {
		prev = a.skipHint
	} else {
		prev = 0
	}

	prevSize, prevNext := memlayout.ReadHeader(data, int(prev))
	for prevNext != endMarker && prevNext < off {
		iterations++
		prev = prevNext
		prevSize, prevNext = memlayout.ReadHeader(data, int(prev))
	}

	blockOff := off
	blockSize := alignedSize
	blockNext := prevNext

	mergedWithPrev := false
	if prev+prevSize == blockOff {
		mergedWithPrev = true
		blockOff = prev
		blockSize = prevSize + alignedSize
	}

	if prevNext != endMarker {
		nextSize, nextNext := memlayout.ReadHeader(data, int(prevNext))
		if blockOff+blockSize == prevNext {
			if prevNext == a.skipHint {
				a.skipHint = blockOff // overwritten below; kept for fidelity with the source
			}
			blockSize += nextSize
			blockNext = nextNext
		} else {
			blockNext = prevNext
		}
	} else {
		blockNext = endMarker
	}

	if mergedWithPrev {
		memlayout.WriteHeader(data, int(blockOff), blockSize, blockNext)
	} else {
		memlayout.WriteHeader(data, int(blockOff), blockSize, blockNext)
		memlayout.WriteHeader(data, int(prev), prevSize, blockOff)
	}

	a.skipHint = prev

	a.allocatedBytes -= int(alignedSize)
	for a.allocatedBytes+a.layout.desiredLimit <= a.limit && a.limit > a.layout.desiredLimit {
		a.limit -= a.layout.desiredLimit
	}

	return usedSkip, iterations
}
