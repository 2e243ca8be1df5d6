//go:build unix

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// guardBacking is a backingStore whose bytes live in an anonymous mmap
// region flanked by a PROT_NONE page on each side. Any Ptr arithmetic
// that walks off the front or back of the arena faults immediately
// instead of silently aliasing unrelated memory.
type guardBacking struct {
	region   []byte // pageSize redzone + arena + pageSize redzone
	data     []byte // the arena-sized interior slice, what Bytes() returns
	pageSize int
}

func newDebugBacking(size int) (backingStore, error) {
	pageSize := unix.Getpagesize()
	total := pageSize + size + pageSize

	region, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap guard backing: %w", err)
	}
	if err := unix.Mprotect(region[:pageSize], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(region)
		return nil, fmt.Errorf("heap: protect leading redzone: %w", err)
	}
	if err := unix.Mprotect(region[pageSize+size:], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(region)
		return nil, fmt.Errorf("heap: protect trailing redzone: %w", err)
	}

	return &guardBacking{
		region:   region,
		data:     region[pageSize : pageSize+size],
		pageSize: pageSize,
	}, nil
}

func (g *guardBacking) Bytes() []byte { return g.data }

// Protect only touches OS pages fully contained within [off, off+length)
// — a range that doesn't span a whole page is left accessible, since
// partial-page protection would also revoke access to whatever else
// shares that page. Not called from the allocation/free path; see
// backingStore's doc.
func (g *guardBacking) Protect(off, length int, writable bool) error {
	start, end := pageAlignedInterior(off, length, g.pageSize)
	if end <= start {
		return nil
	}
	prot := unix.PROT_NONE
	if writable {
		prot = unix.PROT_READ | unix.PROT_WRITE
	}
	return unix.Mprotect(g.data[start:end], prot)
}

func (g *guardBacking) Close() error {
	if g.region == nil {
		return nil
	}
	err := unix.Munmap(g.region)
	g.region = nil
	g.data = nil
	return err
}
