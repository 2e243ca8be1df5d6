package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberheap/emberheap/heap"
)

var (
	stressOps       int
	stressSeed      int64
	stressHeapSize  int
	stressAlignment int
)

func init() {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized alloc/free workload and report the outcome",
		Long: `stress drives an arena through the same randomized alloc/free
pattern as the library's fuzz property test, checking allocation
conservation after every operation and reporting the final stats or the
first invariant violation encountered.`,
		RunE: runStress,
	}
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "number of alloc/free operations to run")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&stressHeapSize, "heap-size", 1<<16, "total arena size in bytes")
	cmd.Flags().IntVar(&stressAlignment, "alignment", 8, "allocation alignment in bytes")
	rootCmd.AddCommand(cmd)
}

func runStress(cmd *cobra.Command, args []string) error {
	a, err := heap.New(heap.Config{
		HeapSize:     stressHeapSize,
		Alignment:    stressAlignment,
		StatsEnabled: true,
	})
	if err != nil {
		return err
	}

	sizes := []int{8, 16, 24, 32, 64}
	type allocation struct {
		ptr  heap.Ptr
		size int
	}
	var live []allocation
	expected := 0

	rng := rand.New(rand.NewSource(stressSeed))

	for i := 0; i < stressOps; i++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			size := sizes[rng.Intn(len(sizes))]
			ptr, ok := a.Alloc(size)
			if !ok {
				continue
			}
			live = append(live, allocation{ptr: ptr, size: size})
			expected += alignUp(size, stressAlignment)
		} else {
			idx := rng.Intn(len(live))
			victim := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			a.Free(victim.ptr, victim.size)
			expected -= alignUp(victim.size, stressAlignment)
		}

		if got := a.AllocatedBytes(); got != expected {
			return fmt.Errorf("invariant violation after op %d: allocated_bytes = %d, want %d", i, got, expected)
		}
	}

	fmt.Fprintf(os.Stdout, "ran %d operations, %d live allocations remaining\n", stressOps, len(live))
	a.PrintStats(os.Stdout)

	for _, l := range live {
		a.Free(l.ptr, l.size)
	}
	return nil
}

func alignUp(n, alignment int) int {
	mask := alignment - 1
	return (n + mask) &^ mask
}
