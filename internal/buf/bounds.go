package buf

import "math"

// AddAddr adds off to base, returning ok = false when the result would wrap.
func AddAddr(base, off uint64) (uint64, bool) {
	if base > math.MaxUint64-off {
		return 0, false
	}
	return base + off, true
}

// MulAddr multiplies a and b, returning ok = false when the result would wrap.
// This is essential for index * stride calculations against foreign memory.
func MulAddr(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

// Element returns base + index*stride, or ok = false on overflow.
//
//	addr, ok := buf.Element(pool.base, uint64(i), pool.stride)
//	if !ok {
//	    return 0
//	}
func Element(base, index, stride uint64) (uint64, bool) {
	off, ok := MulAddr(index, stride)
	if !ok {
		return 0, false
	}
	return AddAddr(base, off)
}

// Within reports whether [addr, addr+n) lies inside [base, base+size).
func Within(base, size, addr, n uint64) bool {
	if addr < base {
		return false
	}
	rel := addr - base
	if rel > size {
		return false
	}
	return n <= size-rel
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}
