// Package reclaim defines the reclamation-callback contract that the
// heap package's pressure controller dispatches to when memory pressure
// rises. It is the seam reserved for the embedding host's garbage
// collector: this package never runs a collector itself, it only gives
// the host a place to register one.
//
// # Usage
//
//	reg := reclaim.NewRegistry()
//	reg.Register(func(sev reclaim.Severity) {
//	    if sev == reclaim.SeverityHigh {
//	        runFullGC()
//	    } else {
//	        runIncrementalGC()
//	    }
//	})
//
//	a, err := heap.New(heap.Config{HeapSize: 1 << 17, Reclaimers: reg})
package reclaim
