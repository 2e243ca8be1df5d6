package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberheap/emberheap/heap"
	"github.com/emberheap/emberheap/pkg/reclaim"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pressure-demo",
		Short: "Demonstrate the pressure controller's escalating reclaim callbacks",
		Long: `pressure-demo registers a toy reclaimer that logs the severity it
was invoked at and frees a fixed side-channel block, then drives
allocation past the soft limit to show the escalating LOW to HIGH
retry loop.`,
		RunE: runPressureDemo,
	}
	rootCmd.AddCommand(cmd)
}

func runPressureDemo(cmd *cobra.Command, args []string) error {
	const heapSize = 256
	const desiredLimit = 32

	reg := reclaim.NewRegistry()

	a, err := heap.New(heap.Config{
		HeapSize:     heapSize,
		DesiredLimit: desiredLimit,
		Reclaimers:   reg,
	})
	if err != nil {
		return err
	}

	sideChannel, ok := a.Alloc(16)
	if !ok {
		return fmt.Errorf("setup: failed to allocate side-channel block")
	}
	sideChannelFreed := false

	reg.Register(func(sev reclaim.Severity) {
		fmt.Fprintf(os.Stdout, "reclaimer invoked at severity=%s\n", sev)
		if !sideChannelFreed {
			a.Free(sideChannel, 16)
			sideChannelFreed = true
			fmt.Fprintln(os.Stdout, "  freed the side-channel block")
		}
	})

	fmt.Fprintf(os.Stdout, "initial limit=%d allocated=%d\n", a.Limit(), a.AllocatedBytes())

	var ptrs []heap.Ptr
	for i := 0; i < 20; i++ {
		ptr, ok := a.Alloc(16)
		if !ok {
			fmt.Fprintf(os.Stdout, "alloc(16) failed at iteration %d (limit=%d allocated=%d)\n", i, a.Limit(), a.AllocatedBytes())
			break
		}
		ptrs = append(ptrs, ptr)
		fmt.Fprintf(os.Stdout, "alloc(16) -> %d (limit=%d allocated=%d)\n", ptr, a.Limit(), a.AllocatedBytes())
	}

	for _, p := range ptrs {
		a.Free(p, 16)
	}
	return nil
}
