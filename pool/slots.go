package pool

import (
	"fmt"
	"iter"

	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// Occupancy byte layout.
const (
	slotInUse      = 0x80
	slotGeneration = 0x7F

	// usedCountMask strips the two flag bits the host keeps above the used count.
	usedCountMask = 0x3FFFFFFF

	// maxHandleIndex is the largest index a 32-bit handle can carry.
	maxHandleIndex = 1<<24 - 1
)

// Handle identifies a pool slot as (index << 8) | generation. Zero means no object.
type Handle uint32

// MakeHandle packs index and generation. Generation is truncated to 7 bits.
func MakeHandle(index uint32, generation uint8) Handle {
	return Handle(index<<8 | uint32(generation&slotGeneration))
}

// Index returns the slot index encoded in h.
func (h Handle) Index() uint32 { return uint32(h) >> 8 }

// Generation returns the low byte of h.
func (h Handle) Generation() uint8 { return uint8(h) }

func (h Handle) String() string { return fmt.Sprintf("0x%x", uint32(h)) }

// SlotsHeader is a decoded pool header.
type SlotsHeader struct {
	Base      mem.Addr
	Occupancy mem.Addr
	Count     uint32
	SlotSize  uint32
}

// Slots is a view over a generation-counted pool in host memory.
type Slots struct {
	r      mem.Reader
	addr   mem.Addr // pool header, used to re-read the used count
	l      layout.SlotPool
	hdr    SlotsHeader
	limits layout.Limits
}

// OpenSlots reads the pool header at addr.
func OpenSlots(r mem.Reader, addr mem.Addr, l layout.SlotPool, limits layout.Limits) (*Slots, error) {
	base, err := mem.ReadPtr(r, addr.Offset(l.Base))
	if err != nil {
		return nil, fmt.Errorf("slot pool %s: base: %w", addr, err)
	}
	occ, err := mem.ReadPtr(r, addr.Offset(l.Occupancy))
	if err != nil {
		return nil, fmt.Errorf("slot pool %s: occupancy: %w", addr, err)
	}
	count, err := mem.ReadU32(r, addr.Offset(l.Count))
	if err != nil {
		return nil, fmt.Errorf("slot pool %s: count: %w", addr, err)
	}
	size, err := mem.ReadU32(r, addr.Offset(l.SlotSize))
	if err != nil {
		return nil, fmt.Errorf("slot pool %s: slot size: %w", addr, err)
	}
	s := NewSlots(r, SlotsHeader{Base: base, Occupancy: occ, Count: count, SlotSize: size}, limits)
	s.addr = addr
	s.l = l
	return s, nil
}

// NewSlots builds a view from an already decoded header.
func NewSlots(r mem.Reader, hdr SlotsHeader, limits layout.Limits) *Slots {
	if limits.MaxSlots <= 0 {
		limits.MaxSlots = layout.DefaultLimits.MaxSlots
	}
	return &Slots{r: r, hdr: hdr, limits: limits}
}

// Header returns the decoded header.
func (s *Slots) Header() SlotsHeader { return s.hdr }

// Capacity returns the slot count.
func (s *Slots) Capacity() uint32 { return s.hdr.Count }

// Count returns the host's live-slot counter, or 0 when the pool was built
// without a header address.
func (s *Slots) Count() uint32 {
	if s.addr == 0 {
		return 0
	}
	return mem.U32(s.r, s.addr.Offset(s.l.Used)) & usedCountMask
}

// occupancy reads the occupancy byte for index. ok is false for an index out
// of range or an unreadable byte; no read happens for an out-of-range index.
func (s *Slots) occupancy(index uint32) (uint8, bool) {
	if index >= s.hdr.Count {
		return 0, false
	}
	b, err := mem.ReadU8(s.r, s.hdr.Occupancy.Offset(index))
	if err != nil {
		return 0, false
	}
	return b, true
}

// IsValid reports whether slot index is in use.
func (s *Slots) IsValid(index uint32) bool {
	b, ok := s.occupancy(index)
	return ok && b&slotInUse != 0
}

// IsHandleValid reports whether h refers to an in-use slot whose generation
// still matches.
func (s *Slots) IsHandleValid(h Handle) bool {
	b, ok := s.occupancy(h.Index())
	if !ok || b&slotInUse == 0 {
		return false
	}
	return b&slotGeneration == h.Generation()
}

// AddressOf returns the address of slot index, or the null Addr when the slot
// is not in use.
func (s *Slots) AddressOf(index uint32) mem.Addr {
	if !s.IsValid(index) {
		return 0
	}
	return s.hdr.Base.Index(uint64(index), uint64(s.hdr.SlotSize))
}

// AddressFromHandle validates h and returns its slot address, or the null Addr.
func (s *Slots) AddressFromHandle(h Handle) mem.Addr {
	if !s.IsHandleValid(h) {
		return 0
	}
	return s.hdr.Base.Index(uint64(h.Index()), uint64(s.hdr.SlotSize))
}

// HandleFromIndex returns the current handle for slot index, or 0.
func (s *Slots) HandleFromIndex(index uint32) Handle {
	if index > maxHandleIndex {
		return 0
	}
	b, ok := s.occupancy(index)
	if !ok || b&slotInUse == 0 {
		return 0
	}
	return MakeHandle(index, b&slotGeneration)
}

// HandleFromAddress returns the handle of the slot starting at addr, or 0 when
// addr is outside the pool or not slot-aligned.
func (s *Slots) HandleFromAddress(addr mem.Addr) Handle {
	if s.hdr.SlotSize == 0 || s.hdr.Base == 0 || addr < s.hdr.Base {
		return 0
	}
	off := uint64(addr - s.hdr.Base)
	size := uint64(s.hdr.SlotSize)
	if off%size != 0 {
		return 0
	}
	index := off / size
	if index >= uint64(s.hdr.Count) {
		return 0
	}
	return s.HandleFromIndex(uint32(index))
}

const occupancyChunk = 256

// Handles yields the handle of every in-use slot in index order. At most
// Limits.MaxSlots slots are scanned. Occupancy is read in chunks; when a chunk
// cannot be read whole its bytes are read one at a time and unreadable bytes
// count as free.
func (s *Slots) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		if s.r == nil || s.hdr.Occupancy == 0 {
			return
		}
		n := min(uint64(s.hdr.Count), uint64(s.limits.MaxSlots))
		var chunk [occupancyChunk]byte
		for start := uint64(0); start < n; start += occupancyChunk {
			size := min(n-start, occupancyChunk)
			at := s.hdr.Occupancy.Offset(uint32(start))
			if _, err := s.r.ReadAt(chunk[:size], at); err != nil {
				// The chunk may straddle the end of a mapping.
				for i := range chunk[:size] {
					chunk[i], _ = mem.ReadU8(s.r, at.Offset(uint32(i)))
				}
			}
			for i, b := range chunk[:size] {
				if b&slotInUse == 0 {
					continue
				}
				if !yield(MakeHandle(uint32(start)+uint32(i), b&slotGeneration)) {
					return
				}
			}
		}
	}
}
