// Package memlayout contains the byte-level helpers the heap package uses
// to read and write in-band free-region headers, and the alignment
// arithmetic shared by the allocator and the pointer codec.
package memlayout

// AlignUp returns n rounded up to the next multiple of alignment.
// alignment must be a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, alignment int) int {
	mask := alignment - 1
	return (n + mask) &^ mask
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the base-2 logarithm of n, which must be a power of two.
// Callers are expected to have validated n with IsPowerOfTwo first.
func Log2(n int) int {
	log := 0
	for n > 1 {
		n >>= 1
		log++
	}
	return log
}
