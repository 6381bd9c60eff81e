package pathfind

import (
	"fmt"
	"iter"
	"math"

	"github.com/joshuapare/layoutkit/hashtable"
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// emptyPath backs the layout of zero-value views so that field offsets can be
// computed before validity is checked.
var emptyPath layout.Path

// Store is a view over the host's global path store: a fixed grid of region
// pointers and the street name table.
type Store struct {
	m      mem.Memory
	addr   mem.Addr
	l      *layout.Path
	limits layout.Limits
	names  hashtable.Table
}

// OpenStore opens the path store at addr. The first region slot must be
// readable; individual regions are resolved lazily.
func OpenStore(m mem.Memory, addr mem.Addr, l *layout.Path, limits layout.Limits) (*Store, error) {
	if addr.IsNull() {
		return nil, ErrNullStore
	}
	if _, err := mem.ReadPtr(m, addr.Offset(l.Store.Regions)); err != nil {
		return nil, fmt.Errorf("path store %s: regions: %w", addr, err)
	}
	limits = limits.WithDefaults()
	return &Store{
		m:      m,
		addr:   addr,
		l:      l,
		limits: limits,
		names:  hashtable.Open(m, addr.Offset(l.Store.StreetNames), l.Store.NameTable, limits),
	}, nil
}

func (s *Store) layout() *layout.Path {
	if s == nil || s.l == nil {
		return &emptyPath
	}
	return s.l
}

// Addr returns the store address.
func (s *Store) Addr() mem.Addr { return s.addr }

// RegionCount returns the size of the region grid.
func (s *Store) RegionCount() int { return int(s.l.Store.RegionCount) }

// Region returns the region for areaID. ok is false when areaID is outside
// the grid or the slot is empty. The returned region may still be streamed
// out; see Region.IsNodeArrayValid.
func (s *Store) Region(areaID uint16) (Region, bool) {
	if int(areaID) >= s.RegionCount() {
		return Region{}, false
	}
	p := mem.Ptr(s.m, s.addr.Offset(s.l.Store.Regions).Index(uint64(areaID), 8))
	if p.IsNull() {
		return Region{}, false
	}
	return Region{s: s, addr: p, area: areaID}, true
}

// Regions yields every non-empty region slot.
func (s *Store) Regions() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for i := range s.RegionCount() {
			r, ok := s.Region(uint16(i))
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Node returns the node identified by area and node id.
func (s *Store) Node(areaID, nodeID uint16) (Node, bool) {
	r, ok := s.Region(areaID)
	if !ok {
		return Node{}, false
	}
	return r.Node(int(nodeID))
}

// NodeFromHandle resolves a packed handle to a node.
func (s *Store) NodeFromHandle(h int32) (Node, bool) {
	area, node, ok := DecodeHandle(h)
	if !ok {
		return Node{}, false
	}
	return s.Node(area, node)
}

// NodeAt wraps a known node record address. No validation is performed.
func (s *Store) NodeAt(addr mem.Addr) Node { return Node{s: s, addr: addr} }

// LinkTarget returns the node a link leads to. ok is false when the target
// region is not loaded.
func (s *Store) LinkTarget(l Link) (Node, bool) {
	if !l.Valid() {
		return Node{}, false
	}
	return s.Node(l.AreaID(), l.NodeID())
}

// Links yields the links leaving n. Nothing is yielded when n's region or
// link array is not loaded.
func (n Node) Links() iter.Seq[Link] {
	return func(yield func(Link) bool) {
		if !n.Valid() {
			return
		}
		r, ok := n.s.Region(n.AreaID())
		if !ok {
			return
		}
		start := int(n.LinkStart())
		for i := range int(n.LinkCount()) {
			l, ok := r.Link(start + i)
			if !ok || !yield(l) {
				return
			}
		}
	}
}

// StreetName resolves a street name hash through the store's name table.
func (s *Store) StreetName(hash uint32) (string, bool) {
	v, ok := s.names.Get(hash)
	if !ok {
		return "", false
	}
	return mem.CString(s.m, mem.Addr(v), s.limits.MaxName)
}

// ClosestNode scans every loaded region for the node nearest to pos that
// passes filter. A nil filter accepts every node.
func (s *Store) ClosestNode(pos Vector3, filter func(Node) bool) (Node, bool) {
	var (
		best  Node
		bestD = float32(math.MaxFloat32)
		found bool
	)
	for r := range s.Regions() {
		for n := range r.Nodes() {
			if filter != nil && !filter(n) {
				continue
			}
			if d := n.Position().DistanceSquared(pos); d < bestD {
				best, bestD, found = n, d, true
			}
		}
	}
	return best, found
}
