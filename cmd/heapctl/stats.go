package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emberheap/emberheap/heap"
)

var (
	statsHeapSize  int
	statsAlignment int
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a scripted alloc/free sequence and print statistics",
		Long: `stats constructs an arena, runs a small scripted sequence of
allocations and frees against it, and prints the resulting Stats report.`,
		RunE: runStats,
	}
	cmd.Flags().IntVar(&statsHeapSize, "heap-size", 4096, "total arena size in bytes")
	cmd.Flags().IntVar(&statsAlignment, "alignment", 8, "allocation alignment in bytes")
	rootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := heap.New(heap.Config{
		HeapSize:     statsHeapSize,
		Alignment:    statsAlignment,
		StatsEnabled: true,
	})
	if err != nil {
		return err
	}

	type allocation struct {
		ptr  heap.Ptr
		size int
	}
	var live []allocation
	for _, size := range []int{16, 24, 8, 32, 16, 64} {
		ptr, ok := a.Alloc(size)
		if !ok {
			printVerbose("alloc(%d) failed\n", size)
			continue
		}
		live = append(live, allocation{ptr: ptr, size: size})
		printVerbose("alloc(%d) -> %d\n", size, ptr)
	}

	for i := 0; i < len(live); i += 2 {
		a.Free(live[i].ptr, live[i].size)
	}

	if jsonOut {
		return printJSON(a.Stats())
	}
	a.PrintStats(os.Stdout)
	return nil
}
