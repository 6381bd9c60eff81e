// Package skeleton decodes the host's bone hierarchy: a table of fixed-size
// bone records linked by parent and next-sibling indices, and a hash table
// mapping bone ids to record indices.
//
// Bone ids are usually sequential, in which case the host leaves the id
// table empty and an id is its own index. Relations use 0xFFFF for "none".
package skeleton

import (
	"fmt"
	"iter"

	"github.com/joshuapare/layoutkit/hashtable"
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

const noBone = 0xFFFF

// Skeleton is a view over one skeleton data block.
type Skeleton struct {
	m      mem.Reader
	addr   mem.Addr
	l      *layout.Skeleton
	limits layout.Limits
	bones  mem.Addr
	count  int
	ids    hashtable.Table
}

// Bone is a decoded bone record. Parent and Sibling are -1 when absent.
type Bone struct {
	Index   int    `json:"index"`
	ID      int    `json:"id"`
	Parent  int    `json:"parent"`
	Sibling int    `json:"sibling"`
	Name    string `json:"name,omitempty"`
}

// Open reads the skeleton header at addr.
func Open(r mem.Reader, addr mem.Addr, l *layout.Skeleton, limits layout.Limits) (*Skeleton, error) {
	if addr.IsNull() {
		return nil, ErrNullSkeleton
	}
	bones, err := mem.ReadPtr(r, addr.Offset(l.Bones))
	if err != nil {
		return nil, fmt.Errorf("skeleton %s: bones: %w", addr, err)
	}
	count, err := mem.ReadU16(r, addr.Offset(l.BoneCount))
	if err != nil {
		return nil, fmt.Errorf("skeleton %s: bone count: %w", addr, err)
	}
	limits = limits.WithDefaults()
	n := int(count)
	if bones.IsNull() {
		n = 0
	}
	return &Skeleton{
		m:      r,
		addr:   addr,
		l:      l,
		limits: limits,
		bones:  bones,
		count:  n,
		ids:    hashtable.Open(r, addr.Offset(l.IDMap), l.IDTable, limits),
	}, nil
}

// Addr returns the skeleton data address.
func (s *Skeleton) Addr() mem.Addr { return s.addr }

// BoneCount returns the number of bone records. A null bone array counts as
// zero bones.
func (s *Skeleton) BoneCount() int { return s.count }

func (s *Skeleton) bone(index int) (mem.Addr, bool) {
	if index < 0 || index >= s.count {
		return 0, false
	}
	return s.bones.Index(uint64(index), uint64(s.l.BoneSize)), true
}

// BoneIndexFromID maps a bone id to its record index, or -1.
func (s *Skeleton) BoneIndexFromID(id int) int {
	if id < 0 {
		return -1
	}
	if s.ids.Empty() {
		if id < s.count {
			return id
		}
		return -1
	}
	v, ok := s.ids.Get(uint32(id))
	if !ok || v >= uint64(s.count) {
		return -1
	}
	return int(v)
}

// BoneIDFromIndex returns the id stored in the record at index, or -1.
func (s *Skeleton) BoneIDFromIndex(index int) int {
	b, ok := s.bone(index)
	if !ok {
		return -1
	}
	id, err := mem.ReadU16(s.m, b.Offset(s.l.BoneID))
	if err != nil {
		return -1
	}
	return int(id)
}

// relation follows the index stored at off. Both results are -1 when the
// stored index is 0xFFFF, out of range or unreadable.
func (s *Skeleton) relation(index int, off uint32) (int, int) {
	b, ok := s.bone(index)
	if !ok {
		return -1, -1
	}
	rel, err := mem.ReadU16(s.m, b.Offset(off))
	if err != nil || rel == noBone {
		return -1, -1
	}
	id := s.BoneIDFromIndex(int(rel))
	if id < 0 {
		return -1, -1
	}
	return int(rel), id
}

// Parent returns the index and id of the bone's parent, or (-1, -1).
func (s *Skeleton) Parent(index int) (int, int) { return s.relation(index, s.l.BoneParent) }

// NextSibling returns the index and id of the bone's next sibling, or (-1, -1).
func (s *Skeleton) NextSibling(index int) (int, int) { return s.relation(index, s.l.BoneSibling) }

// Name returns the bone's name. ok is false when the name pointer is null or
// unreadable.
func (s *Skeleton) Name(index int) (string, bool) {
	b, ok := s.bone(index)
	if !ok {
		return "", false
	}
	p := mem.Ptr(s.m, b.Offset(s.l.BoneName))
	if p.IsNull() {
		return "", false
	}
	return mem.CString(s.m, p, s.limits.MaxName)
}

// Bone decodes the record at index.
func (s *Skeleton) Bone(index int) (Bone, bool) {
	id := s.BoneIDFromIndex(index)
	if id < 0 {
		return Bone{}, false
	}
	parent, _ := s.Parent(index)
	sibling, _ := s.NextSibling(index)
	name, _ := s.Name(index)
	return Bone{Index: index, ID: id, Parent: parent, Sibling: sibling, Name: name}, true
}

// Bones yields every decodable bone in index order.
func (s *Skeleton) Bones() iter.Seq[Bone] {
	return func(yield func(Bone) bool) {
		for i := range s.count {
			b, ok := s.Bone(i)
			if ok && !yield(b) {
				return
			}
		}
	}
}

// Children yields the indices of the direct children of index. Pass -1 for
// the root bones. The first child is the lowest-indexed bone naming index as
// its parent; the rest follow its sibling chain, bounded by the bone count.
func (s *Skeleton) Children(index int) iter.Seq[int] {
	return func(yield func(int) bool) {
		first := -1
		for i := range s.count {
			if p, _ := s.Parent(i); p == index {
				first = i
				break
			}
		}
		seen := make(map[int]struct{})
		for c := first; c >= 0 && len(seen) < s.count; c, _ = s.NextSibling(c) {
			if _, dup := seen[c]; dup {
				return
			}
			seen[c] = struct{}{}
			if !yield(c) {
				return
			}
		}
	}
}
