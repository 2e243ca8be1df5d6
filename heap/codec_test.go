package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompress_FirstValidAddressEncodesToOne(t *testing.T) {
	a := newTestArena(t, nil)

	_, err := a.Compress(Ptr(0))
	require.ErrorIs(t, err, ErrNullPointer)

	cp, err := a.Compress(arenaBase)
	require.NoError(t, err)
	require.Equal(t, CompressedPtr(1), cp)

	for k := 1; k < 5; k++ {
		ptr := arenaBase + Ptr(k*8)
		cp, err := a.Compress(ptr)
		require.NoError(t, err)

		back, err := a.Decompress(cp)
		require.NoError(t, err)
		require.Equal(t, ptr, back)
	}
}

func TestDecompress_RejectsNullCP(t *testing.T) {
	a := newTestArena(t, nil)
	_, err := a.Decompress(NullCP)
	require.ErrorIs(t, err, ErrNullOffset)
}

func TestCompress_RejectsOutOfRangeAndMisaligned(t *testing.T) {
	a := newTestArena(t, nil)

	_, err := a.Compress(Ptr(512))
	require.ErrorIs(t, err, ErrForeignPointer)

	_, err = a.Compress(Ptr(11))
	require.ErrorIs(t, err, ErrForeignPointer)
}

func TestCodec_RoundTripsEveryAlignedOffset(t *testing.T) {
	a := newTestArena(t, nil)

	for off := arenaBase; off < Ptr(512); off += 8 {
		cp, err := a.Compress(off)
		require.NoError(t, err)

		back, err := a.Decompress(cp)
		require.NoError(t, err)
		require.Equal(t, off, back)
	}
}
