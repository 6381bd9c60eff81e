package fragment

import (
	"iter"

	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// LODSlots is the number of LOD pointers in a LOD group.
const LODSlots = 3

// SelectSlot maps an instance's LOD selector to a LOD slot. Selectors 0, 1
// and 2 pick the matching slot; anything else, negative values included,
// falls back to slot 0.
func SelectSlot(selector int32) int {
	switch selector {
	case 0, 1, 2:
		return int(selector)
	default:
		return 0
	}
}

// Inst is a view over a fragment instance.
type Inst struct {
	m    mem.Memory
	addr mem.Addr
	l    *layout.Fragment
}

// NewInst wraps the fragment instance at addr.
func NewInst(m mem.Memory, addr mem.Addr, l *layout.Fragment) Inst {
	return Inst{m: m, addr: addr, l: l}
}

// Addr returns the instance address.
func (i Inst) Addr() mem.Addr { return i.addr }

// Valid reports whether i points at an instance.
func (i Inst) Valid() bool { return i.m != nil && i.l != nil && i.addr != 0 }

// Type returns the address of the instance's fragment type, or 0.
func (i Inst) Type() mem.Addr {
	if !i.Valid() {
		return 0
	}
	return mem.Ptr(i.m, i.addr.Offset(i.l.InstType))
}

// LODGroup returns the address of the type's LOD group, or 0.
func (i Inst) LODGroup() mem.Addr {
	t := i.Type()
	if t.IsNull() {
		return 0
	}
	return mem.Ptr(i.m, t.Offset(i.l.TypeLODGroup))
}

// Selector returns the raw LOD selector.
func (i Inst) Selector() int32 {
	if !i.Valid() {
		return 0
	}
	return mem.I32(i.m, i.addr.Offset(i.l.InstSelector))
}

// ResolveLOD walks instance, type and LOD group to the selected LOD. ok is
// false when any pointer on the way is null.
func (i Inst) ResolveLOD() (LOD, bool) {
	g := i.LODGroup()
	if g.IsNull() {
		return LOD{}, false
	}
	slot := SelectSlot(i.Selector())
	p := mem.Ptr(i.m, g.Offset(i.l.GroupLODs).Index(uint64(slot), 8))
	if p.IsNull() {
		return LOD{}, false
	}
	return LOD{m: i.m, addr: p, l: i.l}, true
}

// DamageRatio returns the instance's accumulated damage ratio.
func (i Inst) DamageRatio() float32 {
	if !i.Valid() {
		return 0
	}
	return mem.F32(i.m, i.addr.Offset(i.l.InstDamageRatio))
}

// SetDamageRatio overwrites the damage ratio.
func (i Inst) SetDamageRatio(v float32) error {
	if !i.Valid() {
		return ErrInvalidView
	}
	return mem.PutF32(i.m, i.addr.Offset(i.l.InstDamageRatio), v)
}

// LOD is a view over one physics LOD.
type LOD struct {
	m    mem.Memory
	addr mem.Addr
	l    *layout.Fragment
}

// Addr returns the LOD address.
func (d LOD) Addr() mem.Addr { return d.addr }

// Valid reports whether d points at a LOD.
func (d LOD) Valid() bool { return d.m != nil && d.l != nil && d.addr != 0 }

// ChildCount returns the number of type children.
func (d LOD) ChildCount() int {
	if !d.Valid() {
		return 0
	}
	return int(mem.U8(d.m, d.addr.Offset(d.l.LODChildCount)))
}

// Child returns the type child at index. ok is false when index is out of
// range or the child array or child pointer is null.
func (d LOD) Child(index int) (TypeChild, bool) {
	if index < 0 || index >= d.ChildCount() {
		return TypeChild{}, false
	}
	arr := mem.Ptr(d.m, d.addr.Offset(d.l.LODChildren))
	if arr.IsNull() {
		return TypeChild{}, false
	}
	p := mem.Ptr(d.m, arr.Index(uint64(index), 8))
	if p.IsNull() {
		return TypeChild{}, false
	}
	return TypeChild{m: d.m, addr: p, l: d.l}, true
}

// Children yields every resolvable type child, skipping null entries.
func (d LOD) Children() iter.Seq2[int, TypeChild] {
	return func(yield func(int, TypeChild) bool) {
		for i := range d.ChildCount() {
			c, ok := d.Child(i)
			if ok && !yield(i, c) {
				return
			}
		}
	}
}

// TypeChild is a view over one breakable part of a fragment type.
type TypeChild struct {
	m    mem.Memory
	addr mem.Addr
	l    *layout.Fragment
}

// Addr returns the child address.
func (c TypeChild) Addr() mem.Addr { return c.addr }

// Valid reports whether c points at a child.
func (c TypeChild) Valid() bool { return c.m != nil && c.l != nil && c.addr != 0 }

// BoneIndex returns the skeleton bone the child is attached to.
func (c TypeChild) BoneIndex() int {
	if !c.Valid() {
		return -1
	}
	v, err := mem.ReadU16(c.m, c.addr.Offset(c.l.ChildBoneIndex))
	if err != nil {
		return -1
	}
	return int(v)
}

// Group returns the index of the child's breakable group.
func (c TypeChild) Group() int {
	if !c.Valid() {
		return -1
	}
	v, err := mem.ReadU8(c.m, c.addr.Offset(c.l.ChildGroup))
	if err != nil {
		return -1
	}
	return int(v)
}

// PristineMass returns the child's undamaged mass.
func (c TypeChild) PristineMass() float32 {
	if !c.Valid() {
		return 0
	}
	return mem.F32(c.m, c.addr.Offset(c.l.ChildPristine))
}

// DamagedMass returns the child's mass once broken off.
func (c TypeChild) DamagedMass() float32 {
	if !c.Valid() {
		return 0
	}
	return mem.F32(c.m, c.addr.Offset(c.l.ChildDamaged))
}

// SetPristineMass overwrites the undamaged mass.
func (c TypeChild) SetPristineMass(v float32) error {
	if !c.Valid() {
		return ErrInvalidView
	}
	return mem.PutF32(c.m, c.addr.Offset(c.l.ChildPristine), v)
}

// SetDamagedMass overwrites the broken-off mass.
func (c TypeChild) SetDamagedMass(v float32) error {
	if !c.Valid() {
		return ErrInvalidView
	}
	return mem.PutF32(c.m, c.addr.Offset(c.l.ChildDamaged), v)
}
