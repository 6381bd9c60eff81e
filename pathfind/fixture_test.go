package pathfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/internal/testutil"
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// network lays out a path store in fake host memory.
type network struct {
	*testutil.Host
	l     *layout.Path
	addr  mem.Addr
	store *Store
}

type nodeDef struct {
	x, y, z   int16
	flags     [4]uint8
	linkStart uint16
	linkCount uint8
	street    uint32
}

type linkDef struct {
	area, node uint16
	flags      uint8
	lanes      uint8
	length     uint8
}

func newNetwork(t *testing.T) *network {
	t.Helper()
	h := testutil.NewHost(t, 0x20000)
	l := &h.Table.Path
	addr := h.Alloc(int(l.Store.StreetNames) + 0x20)
	s, err := OpenStore(h, addr, l, h.Table.Limits)
	require.NoError(t, err)
	return &network{Host: h, l: l, addr: addr, store: s}
}

// region installs a region container in grid slot area and returns its
// address. A nil nodes slice leaves the node array pointer null while still
// storing a node count, which is how the host leaves streamed-out regions.
func (n *network) region(area uint16, nodes []nodeDef, links []linkDef) mem.Addr {
	rl := n.l.Region
	r := n.Alloc(0x20)
	n.PutPtr(n.addr.Offset(n.l.Store.Regions).Index(uint64(area), 8), r)

	if nodes != nil {
		arr := n.Alloc(max(1, len(nodes)) * int(n.l.Node.Size))
		for i, def := range nodes {
			n.node(arr.Index(uint64(i), uint64(n.l.Node.Size)), area, uint16(i), def)
		}
		n.PutPtr(r.Offset(rl.Nodes), arr)
		n.PutU32(r.Offset(rl.NodeCount), uint32(len(nodes)))
	} else {
		n.PutU32(r.Offset(rl.NodeCount), 5)
	}

	if links != nil {
		arr := n.Alloc(max(1, len(links)) * int(n.l.Link.Size))
		for i, def := range links {
			a := arr.Index(uint64(i), uint64(n.l.Link.Size))
			n.PutU16(a.Offset(n.l.Link.AreaID), def.area)
			n.PutU16(a.Offset(n.l.Link.NodeID), def.node)
			n.PutU8(a.Offset(n.l.Link.Flags), def.flags)
			n.PutU8(a.Offset(n.l.Link.Lanes), def.lanes)
			n.PutU8(a.Offset(n.l.Link.Length), def.length)
		}
		n.PutPtr(r.Offset(rl.Links), arr)
		n.PutU32(r.Offset(rl.LinkCount), uint32(len(links)))
	}
	return r
}

func (n *network) node(a mem.Addr, area, id uint16, def nodeDef) {
	nl := n.l.Node
	n.PutU16(a.Offset(nl.AreaID), area)
	n.PutU16(a.Offset(nl.NodeID), id)
	n.PutU32(a.Offset(nl.StreetName), def.street)
	n.PutU16(a.Offset(nl.LinkStart), def.linkStart)
	n.PutI16(a.Offset(nl.PosX), def.x)
	n.PutI16(a.Offset(nl.PosY), def.y)
	n.PutI16(a.Offset(nl.PosZ), def.z)
	n.PutU8(a.Offset(nl.Flags0), def.flags[0])
	n.PutU8(a.Offset(nl.Flags1), def.flags[1])
	n.PutU8(a.Offset(nl.Flags2), def.flags[2]|def.linkCount<<flag2LinkCountShift)
	n.PutU8(a.Offset(nl.Flags3), def.flags[3])
}

// only returns the single node of a one-node region in area 0.
func (n *network) only(t *testing.T, def nodeDef) Node {
	t.Helper()
	n.region(0, []nodeDef{def}, nil)
	node, ok := n.store.Node(0, 0)
	require.True(t, ok)
	return node
}
