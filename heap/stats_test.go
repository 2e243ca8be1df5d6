package heap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats_PanicsWhenDisabled(t *testing.T) {
	a := newTestArena(t, nil)
	require.Panics(t, func() { a.Stats() })
}

func TestStats_TracksAllocatedWasteAndPeaks(t *testing.T) {
	a := newTestArena(t, func(cfg *Config) {
		cfg.StatsEnabled = true
	})

	p0, ok := a.Alloc(10) // rounds up to 16, 6 bytes waste
	require.True(t, ok)

	s := a.Stats()
	require.Equal(t, 16, s.Allocated)
	require.Equal(t, 6, s.Waste)
	require.Equal(t, 1, s.AllocCount)
	require.Equal(t, 16, s.PeakAllocated)
	require.Equal(t, 16, s.GlobalPeakAllocated)

	a.Free(p0, 10)

	s = a.Stats()
	require.Equal(t, 0, s.Allocated)
	require.Equal(t, 0, s.Waste)
	require.Equal(t, 1, s.FreeCount)
	require.Equal(t, 16, s.GlobalPeakAllocated, "global peak survives the free")
}

func TestResetPeakStats_LeavesGlobalPeakAlone(t *testing.T) {
	a := newTestArena(t, func(cfg *Config) {
		cfg.StatsEnabled = true
	})

	p0, _ := a.Alloc(64)
	a.Free(p0, 64)

	a.ResetPeakStats()
	s := a.Stats()
	require.Equal(t, 0, s.PeakAllocated)
	require.Equal(t, 64, s.GlobalPeakAllocated)
}

func TestPrintStats_GuardsAverageSizeBeforeAnyFree(t *testing.T) {
	a := newTestArena(t, func(cfg *Config) {
		cfg.StatsEnabled = true
	})

	p0, ok := a.Alloc(8)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NotPanics(t, func() { a.PrintStats(&buf) })
	require.Contains(t, buf.String(), "no allocations recorded yet")

	a.Free(p0, 8)
	buf.Reset()
	a.PrintStats(&buf)
	require.Contains(t, buf.String(), "avg.alloc.size")
	require.NotContains(t, buf.String(), "no allocations recorded yet")
}

func TestPrintStats_DisabledWritesPlaceholder(t *testing.T) {
	a := newTestArena(t, nil)

	var buf bytes.Buffer
	a.PrintStats(&buf)
	require.Contains(t, buf.String(), "disabled")
}

func TestStats_SkipAndNonSkipCounted(t *testing.T) {
	a := newTestArena(t, func(cfg *Config) {
		cfg.StatsEnabled = true
	})

	p0, _ := a.Alloc(8)
	p1, _ := a.Alloc(8)

	a.Free(p0, 8)
	a.Free(p1, 8)

	s := a.Stats()
	require.Equal(t, s.SkipCount+s.NonSkipCount, s.FreeCount)
}
