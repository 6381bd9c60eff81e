package fragment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/internal/testutil"
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

type child struct {
	bone              uint16
	group             uint8
	pristine, damaged float32
}

// chain holds a fully linked instance with one LOD per slot. LOD slot i has
// i+1 children so tests can tell which slot was selected.
type chain struct {
	*testutil.Host
	l     *layout.Fragment
	inst  mem.Addr
	typ   mem.Addr
	group mem.Addr
	lods  [LODSlots]mem.Addr
}

func newChain(t *testing.T) *chain {
	t.Helper()
	h := testutil.NewHost(t, 0x10000)
	c := &chain{Host: h, l: &h.Table.Fragment}
	c.inst = h.Alloc(0x100)
	c.typ = h.Alloc(0x100)
	c.group = h.Alloc(0x40)
	h.PutPtr(c.inst.Offset(c.l.InstType), c.typ)
	h.PutPtr(c.typ.Offset(c.l.TypeLODGroup), c.group)
	for slot := range LODSlots {
		children := make([]child, slot+1)
		for i := range children {
			children[i] = child{bone: uint16(10*slot + i), group: uint8(i), pristine: 100, damaged: 25}
		}
		c.lods[slot] = c.lod(children)
		h.PutPtr(c.group.Offset(c.l.GroupLODs).Index(uint64(slot), 8), c.lods[slot])
	}
	return c
}

func (c *chain) lod(children []child) mem.Addr {
	lod := c.Alloc(0x120)
	arr := c.Alloc(max(1, len(children)) * 8)
	for i, ch := range children {
		rec := c.Alloc(0x20)
		c.PutU16(rec.Offset(c.l.ChildBoneIndex), ch.bone)
		c.PutU8(rec.Offset(c.l.ChildGroup), ch.group)
		c.PutF32(rec.Offset(c.l.ChildPristine), ch.pristine)
		c.PutF32(rec.Offset(c.l.ChildDamaged), ch.damaged)
		c.PutPtr(arr.Index(uint64(i), 8), rec)
	}
	c.PutPtr(lod.Offset(c.l.LODChildren), arr)
	c.PutU8(lod.Offset(c.l.LODChildCount), uint8(len(children)))
	return lod
}

func (c *chain) instView() Inst { return NewInst(c, c.inst, c.l) }

func TestSelectSlot(t *testing.T) {
	tests := []struct {
		selector int32
		want     int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 0},
		{-1, 0},
		{255, 0},
		{math.MaxInt32, 0},
		{math.MinInt32, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectSlot(tt.selector), "selector %d", tt.selector)
	}
}

func TestResolveLODUsesSelector(t *testing.T) {
	for _, sel := range []int32{0, 1, 2, 3, -1, 255} {
		c := newChain(t)
		c.PutI32(c.inst.Offset(c.l.InstSelector), sel)
		inst := c.instView()
		assert.Equal(t, sel, inst.Selector())

		lod, ok := inst.ResolveLOD()
		require.True(t, ok, "selector %d", sel)
		want := SelectSlot(sel)
		assert.Equal(t, c.lods[want], lod.Addr(), "selector %d", sel)
		assert.Equal(t, want+1, lod.ChildCount())
	}
}

func TestResolveLODNullLinks(t *testing.T) {
	tests := []struct {
		name  string
		sever func(c *chain)
	}{
		{"null type", func(c *chain) { c.PutPtr(c.inst.Offset(c.l.InstType), 0) }},
		{"null lod group", func(c *chain) { c.PutPtr(c.typ.Offset(c.l.TypeLODGroup), 0) }},
		{"null lod slot", func(c *chain) { c.PutPtr(c.group.Offset(c.l.GroupLODs), 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChain(t)
			tt.sever(c)
			_, ok := c.instView().ResolveLOD()
			assert.False(t, ok)
		})
	}

	_, ok := Inst{}.ResolveLOD()
	assert.False(t, ok, "zero instance")
}

func TestLODChildren(t *testing.T) {
	c := newChain(t)
	c.PutI32(c.inst.Offset(c.l.InstSelector), 2)
	lod, ok := c.instView().ResolveLOD()
	require.True(t, ok)
	require.Equal(t, 3, lod.ChildCount())

	ch, ok := lod.Child(1)
	require.True(t, ok)
	assert.Equal(t, 21, ch.BoneIndex())
	assert.Equal(t, 1, ch.Group())
	assert.Equal(t, float32(100), ch.PristineMass())
	assert.Equal(t, float32(25), ch.DamagedMass())

	_, ok = lod.Child(3)
	assert.False(t, ok)
	_, ok = lod.Child(-1)
	assert.False(t, ok)

	// A null entry in the child array is skipped by Children.
	arr := mem.Ptr(c, lod.Addr().Offset(c.l.LODChildren))
	c.PutPtr(arr.Index(1, 8), 0)
	_, ok = lod.Child(1)
	assert.False(t, ok)
	var bones []int
	for _, ch := range lod.Children() {
		bones = append(bones, ch.BoneIndex())
	}
	assert.Equal(t, []int{20, 22}, bones)
}

func TestNullChildArray(t *testing.T) {
	c := newChain(t)
	lod, ok := c.instView().ResolveLOD()
	require.True(t, ok)
	c.PutPtr(lod.Addr().Offset(c.l.LODChildren), 0)
	_, ok = lod.Child(0)
	assert.False(t, ok)
}

func TestWrites(t *testing.T) {
	c := newChain(t)
	inst := c.instView()
	require.NoError(t, inst.SetDamageRatio(0.75))
	assert.Equal(t, float32(0.75), inst.DamageRatio())

	lod, ok := inst.ResolveLOD()
	require.True(t, ok)
	ch, ok := lod.Child(0)
	require.True(t, ok)
	require.NoError(t, ch.SetPristineMass(80))
	require.NoError(t, ch.SetDamagedMass(12.5))
	assert.Equal(t, float32(80), ch.PristineMass())
	assert.Equal(t, float32(12.5), ch.DamagedMass())
	assert.Equal(t, 0, ch.BoneIndex(), "neighbouring fields untouched")

	require.ErrorIs(t, Inst{}.SetDamageRatio(1), ErrInvalidView)
	require.ErrorIs(t, TypeChild{}.SetDamagedMass(1), ErrInvalidView)
	require.ErrorIs(t, TypeChild{}.SetPristineMass(1), ErrInvalidView)
}

func TestWritesThroughReadOnlyMemory(t *testing.T) {
	c := newChain(t)
	inst := NewInst(mem.ReadOnly(c), c.inst, c.l)
	require.ErrorIs(t, inst.SetDamageRatio(1), mem.ErrReadonly)
	assert.Zero(t, inst.DamageRatio())
}
