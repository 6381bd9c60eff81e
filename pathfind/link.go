package pathfind

import "github.com/joshuapare/layoutkit/mem"

// Link is a view over one directed link record. The zero Link is invalid.
type Link struct {
	s    *Store
	addr mem.Addr
}

// Addr returns the record address.
func (l Link) Addr() mem.Addr { return l.addr }

// Valid reports whether l points at a record.
func (l Link) Valid() bool { return l.s != nil && l.addr != 0 }

func (l Link) u8(off uint32) uint8 {
	if !l.Valid() {
		return 0
	}
	return mem.U8(l.s.m, l.addr.Offset(off))
}

func (l Link) u16(off uint32) uint16 {
	if !l.Valid() {
		return 0
	}
	return mem.U16(l.s.m, l.addr.Offset(off))
}

// AreaID returns the area of the node the link leads to.
func (l Link) AreaID() uint16 { return l.u16(l.s.layout().Link.AreaID) }

// NodeID returns the id of the node the link leads to.
func (l Link) NodeID() uint16 { return l.u16(l.s.layout().Link.NodeID) }

// TargetHandle returns the packed handle of the target node.
func (l Link) TargetHandle() int32 {
	if !l.Valid() {
		return 0
	}
	return MakeHandle(l.AreaID(), l.NodeID())
}

// Flags returns the generic link flags.
func (l Link) Flags() LinkFlags { return LinkFlags(l.u8(l.s.layout().Link.Flags)) }

// Length returns the stored link length.
func (l Link) Length() uint8 { return l.u8(l.s.layout().Link.Length) }

// LaneCounts returns the number of lanes towards the target node and back.
func (l Link) LaneCounts() (forward, backward int) {
	b := l.u8(l.s.layout().Link.Lanes)
	return int(b>>linkLanesFwdShift) & linkLanesMask, int(b>>linkLanesBackShift) & linkLanesMask
}
