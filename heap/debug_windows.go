//go:build windows

package heap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// guardBacking is the Windows analogue of the Unix guard-page backing:
// an anonymous VirtualAlloc region flanked by PAGE_NOACCESS pages on
// both sides, so Ptr arithmetic that walks off the arena faults.
type guardBacking struct {
	base     uintptr
	total    int
	data     []byte
	pageSize int
}

func newDebugBacking(size int) (backingStore, error) {
	var si windows.SystemInfo
	windows.GetSystemInfo(&si)
	pageSize := int(si.PageSize)
	total := pageSize + size + pageSize

	addr, err := windows.VirtualAlloc(0, uintptr(total), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("heap: VirtualAlloc guard backing: %w", err)
	}

	var oldProt uint32
	if err := windows.VirtualProtect(addr, uintptr(pageSize), windows.PAGE_NOACCESS, &oldProt); err != nil {
		_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return nil, fmt.Errorf("heap: protect leading redzone: %w", err)
	}
	trailing := addr + uintptr(pageSize+size)
	if err := windows.VirtualProtect(trailing, uintptr(pageSize), windows.PAGE_NOACCESS, &oldProt); err != nil {
		_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return nil, fmt.Errorf("heap: protect trailing redzone: %w", err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr+uintptr(pageSize))), size)
	return &guardBacking{base: addr, total: total, data: data, pageSize: pageSize}, nil
}

func (g *guardBacking) Bytes() []byte { return g.data }

func (g *guardBacking) Protect(off, length int, writable bool) error {
	start, end := pageAlignedInterior(off, length, g.pageSize)
	if end <= start {
		return nil
	}
	prot := uint32(windows.PAGE_NOACCESS)
	if writable {
		prot = windows.PAGE_READWRITE
	}
	var oldProt uint32
	addr := uintptr(unsafe.Pointer(&g.data[start]))
	return windows.VirtualProtect(addr, uintptr(end-start), prot, &oldProt)
}

func (g *guardBacking) Close() error {
	if g.base == 0 {
		return nil
	}
	base := g.base
	g.base = 0
	g.data = nil
	return windows.VirtualFree(base, 0, windows.MEM_RELEASE)
}
