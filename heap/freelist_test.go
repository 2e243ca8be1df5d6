package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// arenaBase is the first usable offset in every test-config arena: the
// anchor occupies offset 0, so the usable area starts at Alignment.
const arenaBase = Ptr(8)

const areaSize = 512 - 8 // HeapSize - Alignment

func TestAlloc_SingleAllocLeavesRemainderAtHead(t *testing.T) {
	a := newTestArena(t, nil)

	p0, ok := a.Alloc(8)
	require.True(t, ok)
	require.Equal(t, arenaBase, p0)
	require.Equal(t, 8, a.AllocatedBytes())

	data := a.backing.Bytes()
	headSize, headNext := readHeaderForTest(data, 16)
	require.Equal(t, uint32(areaSize-8), headSize)
	require.Equal(t, endMarker, headNext)

	a.Free(p0, 8)
}

func TestFree_FullFreeReunitesWholeArea(t *testing.T) {
	a := newTestArena(t, nil)

	p0, ok := a.Alloc(24)
	require.True(t, ok)
	require.Equal(t, arenaBase, p0)

	p1, ok := a.Alloc(8)
	require.True(t, ok)
	require.Equal(t, p0+24, p1)

	a.Free(p0, 24)
	a.Free(p1, 8)

	require.Equal(t, 0, a.AllocatedBytes())

	data := a.backing.Bytes()
	_, anchorNext := readHeaderForTest(data, 0)
	size, next := readHeaderForTest(data, int(anchorNext))
	require.Equal(t, uint32(arenaBase), anchorNext)
	require.Equal(t, uint32(areaSize), size)
	require.Equal(t, endMarker, next)
}

func TestFree_CoalescesBothNeighbours(t *testing.T) {
	a := newTestArena(t, nil)

	p0, ok := a.Alloc(16)
	require.True(t, ok)
	p1, ok := a.Alloc(16)
	require.True(t, ok)
	p2, ok := a.Alloc(16)
	require.True(t, ok)

	a.Free(p1, 16)

	data := a.backing.Bytes()
	_, anchorNext := readHeaderForTest(data, 0)
	holeSize, holeNext := readHeaderForTest(data, int(anchorNext))
	require.Equal(t, uint32(p1), anchorNext)
	require.Equal(t, uint32(16), holeSize)
	tailSize, tailNext := readHeaderForTest(data, int(holeNext))
	require.Equal(t, uint32(p2+16), holeNext)
	require.Equal(t, uint32(areaSize-48), tailSize)
	require.Equal(t, endMarker, tailNext)

	a.Free(p0, 16)

	_, anchorNext = readHeaderForTest(data, 0)
	mergedSize, mergedNext := readHeaderForTest(data, int(anchorNext))
	require.Equal(t, uint32(p0), anchorNext)
	require.Equal(t, uint32(32), mergedSize)
	require.Equal(t, uint32(p2+16), mergedNext)

	a.Free(p2, 16)

	_, anchorNext = readHeaderForTest(data, 0)
	wholeSize, wholeNext := readHeaderForTest(data, int(anchorNext))
	require.Equal(t, uint32(p0), anchorNext)
	require.Equal(t, uint32(areaSize), wholeSize)
	require.Equal(t, endMarker, wholeNext)
	require.Equal(t, 0, a.AllocatedBytes())
}

func TestAlloc_ExhaustsExactlyAreaOverEight(t *testing.T) {
	a := newTestArena(t, nil)

	var ptrs []Ptr
	for {
		p, ok := a.Alloc(8)
		if !ok {
			break
		}
		ptrs = append(ptrs, p)
	}

	require.Equal(t, areaSize/8, len(ptrs))

	_, ok := a.Alloc(8)
	require.False(t, ok)

	sizes := make([]int, len(ptrs))
	for i := range sizes {
		sizes[i] = 8
	}
	freeAll(a, ptrs, sizes)
}

func TestLimit_RatchetsUpThenDown(t *testing.T) {
	a := newTestArena(t, func(cfg *Config) {
		cfg.DesiredLimit = 64
	})
	require.Equal(t, 64, a.Limit())

	ptr, ok := a.Alloc(64)
	require.True(t, ok)
	require.Equal(t, 128, a.Limit())

	a.Free(ptr, 64)
	require.Equal(t, 64, a.Limit())
}

// readHeaderForTest exposes the internal header layout to tests without
// exporting it from the package.
func readHeaderForTest(data []byte, off int) (size, next uint32) {
	return u32le(data, off), u32le(data, off+4)
}

func u32le(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}
