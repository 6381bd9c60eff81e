package mem

import (
	"errors"

	"github.com/joshuapare/layoutkit/internal/buf"
)

var errUnmapped = errors.New("address not mapped")

// Buffer is a contiguous block of memory pinned at a fixed base address. It
// backs snapshots and stands in for a host process in tests.
//
// Buffer is not safe for concurrent writes.
type Buffer struct {
	base Addr
	data []byte
	next int // bump offset used by Alloc
}

// NewBuffer returns a zeroed Buffer of size bytes mapped at base.
func NewBuffer(base Addr, size int) *Buffer {
	return &Buffer{base: base, data: make([]byte, size)}
}

// WrapBuffer maps data at base without copying.
func WrapBuffer(base Addr, data []byte) *Buffer {
	return &Buffer{base: base, data: data, next: len(data)}
}

// Base returns the first mapped address.
func (b *Buffer) Base() Addr { return b.base }

// Len returns the number of mapped bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte { return b.data }

// Contains reports whether [addr, addr+n) is mapped.
func (b *Buffer) Contains(addr Addr, n int) bool {
	if n < 0 {
		return false
	}
	return buf.Within(uint64(b.base), uint64(len(b.data)), uint64(addr), uint64(n))
}

func (b *Buffer) span(addr Addr, n int) ([]byte, error) {
	if !b.Contains(addr, n) {
		return nil, unavailable(addr, n, errUnmapped)
	}
	s, _ := buf.Slice(b.data, int(addr-b.base), n)
	return s, nil
}

// ReadAt copies len(p) bytes at addr into p.
func (b *Buffer) ReadAt(p []byte, addr Addr) (int, error) {
	src, err := b.span(addr, len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, src), nil
}

// WriteAt copies p into the buffer at addr.
func (b *Buffer) WriteAt(p []byte, addr Addr) (int, error) {
	dst, err := b.span(addr, len(p))
	if err != nil {
		return 0, err
	}
	return copy(dst, p), nil
}

// Alloc reserves size bytes aligned to 16 and returns their address, or the
// null Addr once the buffer is exhausted. Reserved bytes are zero.
func (b *Buffer) Alloc(size int) Addr {
	start := (b.next + 15) &^ 15
	if size < 0 || start > len(b.data) || size > len(b.data)-start {
		return 0
	}
	b.next = start + size
	return b.base.Offset(uint32(start))
}

// AllocCString stores s followed by a NUL terminator and returns its address.
func (b *Buffer) AllocCString(s string) Addr {
	addr := b.Alloc(len(s) + 1)
	if addr == 0 {
		return 0
	}
	dst, _ := b.span(addr, len(s)+1)
	copy(dst, s)
	dst[len(s)] = 0
	return addr
}
