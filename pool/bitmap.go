package pool

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// Bitmap is a view over a pool whose occupancy is one bit per slot:
// slot i is in use when bitmap[i>>5] >> (i&31) & 1 is set.
//
// There is no generation counter, so reuse of a slot is undetectable and
// AddressOf does not mask: index 0 and "no object" would be indistinguishable.
// Callers check IsValid first.
type Bitmap struct {
	r      mem.Reader
	base   mem.Addr
	count  uint32
	bitmap mem.Addr
	stride uint32
	limits layout.Limits
}

// OpenBitmap reads the pool header at addr.
func OpenBitmap(r mem.Reader, addr mem.Addr, l layout.BitmapPool, limits layout.Limits) (*Bitmap, error) {
	base, err := mem.ReadPtr(r, addr.Offset(l.Base))
	if err != nil {
		return nil, fmt.Errorf("bitmap pool %s: base: %w", addr, err)
	}
	count, err := mem.ReadU32(r, addr.Offset(l.Count))
	if err != nil {
		return nil, fmt.Errorf("bitmap pool %s: count: %w", addr, err)
	}
	bm, err := mem.ReadPtr(r, addr.Offset(l.Bitmap))
	if err != nil {
		return nil, fmt.Errorf("bitmap pool %s: bitmap: %w", addr, err)
	}
	return NewBitmap(r, base, count, bm, l.Stride, limits), nil
}

// NewBitmap builds a view from decoded header fields.
func NewBitmap(r mem.Reader, base mem.Addr, count uint32, bitmap mem.Addr, stride uint32, limits layout.Limits) *Bitmap {
	if limits.MaxSlots <= 0 {
		limits.MaxSlots = layout.DefaultLimits.MaxSlots
	}
	return &Bitmap{r: r, base: base, count: count, bitmap: bitmap, stride: stride, limits: limits}
}

// Capacity returns the slot count.
func (p *Bitmap) Capacity() uint32 { return p.count }

func (p *Bitmap) word(w uint32) (uint32, bool) {
	v, err := mem.ReadU32(p.r, p.bitmap.Index(uint64(w), 4))
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsValid reports whether slot index is in use.
func (p *Bitmap) IsValid(index uint32) bool {
	if index >= p.count {
		return false
	}
	w, ok := p.word(index >> 5)
	return ok && (w>>(index&31))&1 != 0
}

// AddressOf returns base + index*stride without checking occupancy.
func (p *Bitmap) AddressOf(index uint32) mem.Addr {
	return p.base.Index(uint64(index), uint64(p.stride))
}

// Indices yields every in-use index in ascending order, scanning at most
// Limits.MaxSlots slots.
func (p *Bitmap) Indices() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		n := min(uint64(p.count), uint64(p.limits.MaxSlots))
		for w := uint64(0); w*32 < n; w++ {
			word, ok := p.word(uint32(w))
			if !ok {
				continue
			}
			if rem := n - w*32; rem < 32 {
				word &= 1<<rem - 1
			}
			for word != 0 {
				bit := uint32(bits.TrailingZeros32(word))
				word &^= 1 << bit
				if !yield(uint32(w)*32 + bit) {
					return
				}
			}
		}
	}
}

// Count returns the number of in-use slots.
func (p *Bitmap) Count() int {
	n := 0
	for range p.Indices() {
		n++
	}
	return n
}
