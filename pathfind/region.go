package pathfind

import (
	"iter"

	"github.com/joshuapare/layoutkit/mem"
)

// Region is a view over one streamed region. A Region obtained from a Store
// may still be unloaded: its arrays are null until the host streams it in.
type Region struct {
	s    *Store
	addr mem.Addr
	area uint16
}

// Addr returns the region container address.
func (r Region) Addr() mem.Addr { return r.addr }

// AreaID returns the grid slot the region was read from.
func (r Region) AreaID() uint16 { return r.area }

// Valid reports whether r points at a region container.
func (r Region) Valid() bool { return r.s != nil && r.addr != 0 }

func (r Region) nodes() mem.Addr {
	if !r.Valid() {
		return 0
	}
	return mem.Ptr(r.s.m, r.addr.Offset(r.s.layout().Region.Nodes))
}

// links returns 0 for a streamed-out region even when its link pointer is
// still set.
func (r Region) links() mem.Addr {
	if r.nodes() == 0 {
		return 0
	}
	return mem.Ptr(r.s.m, r.addr.Offset(r.s.layout().Region.Links))
}

// IsNodeArrayValid reports whether the node array is loaded. A null pointer
// means the region is streamed out.
func (r Region) IsNodeArrayValid() bool { return r.nodes() != 0 }

// IsLinkArrayValid reports whether the link array is loaded. It is false for
// a streamed-out region.
func (r Region) IsLinkArrayValid() bool { return r.links() != 0 }

// NodeCount returns the stored node count, capped at Limits.MaxSlots.
func (r Region) NodeCount() int {
	if !r.Valid() {
		return 0
	}
	n := mem.U32(r.s.m, r.addr.Offset(r.s.layout().Region.NodeCount))
	return min(int(n), r.s.limits.MaxSlots)
}

// LinkCount returns the stored link count, capped at Limits.MaxSlots.
func (r Region) LinkCount() int {
	if !r.Valid() {
		return 0
	}
	n := mem.U32(r.s.m, r.addr.Offset(r.s.layout().Region.LinkCount))
	return min(int(n), r.s.limits.MaxSlots)
}

// Node returns the node at index. ok is false when the region is streamed
// out or index is out of range.
func (r Region) Node(index int) (Node, bool) {
	nodes := r.nodes()
	if nodes == 0 || index < 0 || index >= r.NodeCount() {
		return Node{}, false
	}
	return Node{s: r.s, addr: nodes.Index(uint64(index), uint64(r.s.layout().Node.Size))}, true
}

// Link returns the link at index. ok is false when the region is streamed
// out, the link array is null or index is out of range.
func (r Region) Link(index int) (Link, bool) {
	links := r.links()
	if links == 0 || index < 0 || index >= r.LinkCount() {
		return Link{}, false
	}
	return Link{s: r.s, addr: links.Index(uint64(index), uint64(r.s.layout().Link.Size))}, true
}

// Nodes yields every node of a loaded region in index order.
func (r Region) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		nodes := r.nodes()
		if nodes == 0 {
			return
		}
		size := uint64(r.s.layout().Node.Size)
		for i := range r.NodeCount() {
			if !yield(Node{s: r.s, addr: nodes.Index(uint64(i), size)}) {
				return
			}
		}
	}
}
