package pathfind

import (
	"github.com/joshuapare/layoutkit/mem"
)

// Fixed-point scales for stored positions.
const (
	planarScale    = 4.0
	elevationScale = 32.0
)

// MakeHandle encodes an area and node id the way collaborators pass nodes
// around: (nodeID << 16) + areaID + 1. The +1 keeps a zero low half free to
// mean "no node".
func MakeHandle(areaID, nodeID uint16) int32 {
	return int32(uint32(nodeID)<<16 + uint32(areaID) + 1)
}

// DecodeHandle decodes a handle produced by MakeHandle. ok is false for a
// handle whose low 16 bits are zero.
func DecodeHandle(h int32) (areaID, nodeID uint16, ok bool) {
	low := uint32(h) & 0xFFFF
	if low == 0 {
		return 0, 0, false
	}
	return uint16(low - 1), uint16(uint32(h) >> 16), true
}

// Node is a view over one node record. The zero Node is invalid.
type Node struct {
	s    *Store
	addr mem.Addr
}

// Addr returns the record address.
func (n Node) Addr() mem.Addr { return n.addr }

// Valid reports whether n points at a record.
func (n Node) Valid() bool { return n.s != nil && n.addr != 0 }

func (n Node) u8(off uint32) uint8 {
	if !n.Valid() {
		return 0
	}
	return mem.U8(n.s.m, n.addr.Offset(off))
}

func (n Node) u16(off uint32) uint16 {
	if !n.Valid() {
		return 0
	}
	return mem.U16(n.s.m, n.addr.Offset(off))
}

// AreaID returns the id of the region owning n.
func (n Node) AreaID() uint16 { return n.u16(n.s.layout().Node.AreaID) }

// NodeID returns the index of n inside its region.
func (n Node) NodeID() uint16 { return n.u16(n.s.layout().Node.NodeID) }

// Handle returns the packed handle for n.
func (n Node) Handle() int32 {
	if !n.Valid() {
		return 0
	}
	return MakeHandle(n.AreaID(), n.NodeID())
}

// StreetNameHash returns the hash of the street the node lies on.
func (n Node) StreetNameHash() uint32 {
	if !n.Valid() {
		return 0
	}
	return mem.U32(n.s.m, n.addr.Offset(n.s.layout().Node.StreetName))
}

// LinkStart returns the index of the node's first link in its region.
func (n Node) LinkStart() uint16 { return n.u16(n.s.layout().Node.LinkStart) }

// LinkCount returns the number of links leaving n.
func (n Node) LinkCount() uint8 {
	return n.u8(n.s.layout().Node.Flags2) >> flag2LinkCountShift
}

// Density returns the node's traffic density (0-15).
func (n Node) Density() uint8 {
	return n.u8(n.s.layout().Node.Flags3) & flag3DensityMask
}

// RawPosition returns the stored fixed-point coordinates.
func (n Node) RawPosition() (x, y, z int16) {
	l := n.s.layout().Node
	return int16(n.u16(l.PosX)), int16(n.u16(l.PosY)), int16(n.u16(l.PosZ))
}

// Position returns the decompressed world position.
func (n Node) Position() Vector3 {
	x, y, z := n.RawPosition()
	return Vector3{
		X: float32(x) / planarScale,
		Y: float32(y) / planarScale,
		Z: float32(z) / elevationScale,
	}
}

// Properties decodes the node's packed flag bytes.
func (n Node) Properties() Properties {
	if !n.Valid() {
		return 0
	}
	l := n.s.layout().Node
	return decodeProperties(n.u8(l.Flags0), n.u8(l.Flags1), n.u8(l.Flags2), n.u8(l.Flags3))
}

// IsSwitchedOff reports whether traffic is disabled on n.
func (n Node) IsSwitchedOff() bool {
	return n.u8(n.s.layout().Node.Flags2)&flag2SwitchedOff != 0
}

// SetSwitchedOff sets or clears the switched-off bit. Only that bit of the
// flag byte is written; the link count sharing the byte is preserved.
func (n Node) SetSwitchedOff(off bool) error {
	if !n.Valid() {
		return ErrInvalidNode
	}
	return mem.SetBit(n.s.m, n.addr.Offset(n.s.layout().Node.Flags2), flag2SwitchedOff, off)
}

// IsInArea reports whether n lies inside the axis-aligned box spanned by a
// and b. The corners may be given in any order; the box is inclusive.
func (n Node) IsInArea(a, b Vector3) bool {
	if !n.Valid() {
		return false
	}
	p := n.Position()
	minX, maxX := minMax(a.X, b.X)
	minY, maxY := minMax(a.Y, b.Y)
	minZ, maxZ := minMax(a.Z, b.Z)
	return p.X >= minX && p.X <= maxX &&
		p.Y >= minY && p.Y <= maxY &&
		p.Z >= minZ && p.Z <= maxZ
}

// IsInCircle reports whether n lies within radius of center.
func (n Node) IsInCircle(center Vector3, radius float32) bool {
	if !n.Valid() || radius < 0 {
		return false
	}
	return n.Position().DistanceSquared(center) <= radius*radius
}
