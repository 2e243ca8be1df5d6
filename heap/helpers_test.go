package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig returns the scenario configuration used throughout this
// package's tests: a 512-byte heap, 8-byte alignment, and a 128-byte
// desired limit step.
func testConfig() Config {
	return Config{
		HeapSize:     512,
		Alignment:    8,
		DesiredLimit: 128,
	}
}

func newTestArena(t testing.TB, mutate func(*Config)) *Arena {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.Close()
	})
	return a
}

// freeAll frees every pointer in ptrs against its corresponding size in
// sizes, so t.Cleanup's Close doesn't fail on live allocations left
// over from a test that errored out early.
func freeAll(a *Arena, ptrs []Ptr, sizes []int) {
	for i, p := range ptrs {
		a.Free(p, sizes[i])
	}
}
