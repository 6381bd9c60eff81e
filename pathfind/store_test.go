package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/internal/testutil"
	"github.com/joshuapare/layoutkit/mem"
	"github.com/joshuapare/layoutkit/pkg/types"
)

func TestOpenStoreErrors(t *testing.T) {
	h := testutil.NewHost(t, 0x1000)
	l := &h.Table.Path

	_, err := OpenStore(h, 0, l, h.Table.Limits)
	require.ErrorIs(t, err, ErrNullStore)

	_, err = OpenStore(h, 0x10, l, h.Table.Limits)
	require.Error(t, err)
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindUnavailable, kind)
}

func TestRegionLookup(t *testing.T) {
	n := newNetwork(t)
	n.region(4, []nodeDef{{}}, nil)

	_, ok := n.store.Region(3)
	assert.False(t, ok, "empty grid slot")
	_, ok = n.store.Region(uint16(n.store.RegionCount()))
	assert.False(t, ok, "outside the grid")

	r, ok := n.store.Region(4)
	require.True(t, ok)
	assert.Equal(t, uint16(4), r.AreaID())
	assert.True(t, r.IsNodeArrayValid())
	assert.False(t, r.IsLinkArrayValid())
	assert.Equal(t, 1, r.NodeCount())
}

// A streamed-out region keeps its container and count but has a null node
// array. It must report both arrays as invalid and refuse every lookup.
func TestStreamedOutRegionReportsUnavailable(t *testing.T) {
	n := newNetwork(t)
	n.region(9, nil, []linkDef{{area: 1, node: 2}})

	r, ok := n.store.Region(9)
	require.True(t, ok)
	assert.Equal(t, 5, r.NodeCount())
	assert.False(t, r.IsNodeArrayValid())
	assert.False(t, r.IsLinkArrayValid())

	_, ok = r.Link(0)
	assert.False(t, ok, "links of a streamed-out region are unavailable")

	_, ok = r.Node(0)
	assert.False(t, ok)
	_, ok = n.store.Node(9, 0)
	assert.False(t, ok)
	_, ok = n.store.NodeFromHandle(MakeHandle(9, 0))
	assert.False(t, ok)
	for range r.Nodes() {
		t.Fatal("streamed-out region yielded a node")
	}
}

func TestRegionNodeBounds(t *testing.T) {
	n := newNetwork(t)
	n.region(0, []nodeDef{{}, {}}, []linkDef{{}})
	r, ok := n.store.Region(0)
	require.True(t, ok)

	_, ok = r.Node(1)
	assert.True(t, ok)
	_, ok = r.Node(2)
	assert.False(t, ok)
	_, ok = r.Node(-1)
	assert.False(t, ok)
	_, ok = r.Link(1)
	assert.False(t, ok)

	var ids []uint16
	for node := range r.Nodes() {
		ids = append(ids, node.NodeID())
	}
	assert.Equal(t, []uint16{0, 1}, ids)
}

func TestNodeCountCappedByLimits(t *testing.T) {
	n := newNetwork(t)
	r := n.region(0, []nodeDef{{}}, nil)
	n.PutU32(r.Offset(n.l.Region.NodeCount), 0xFFFFFFFF)

	limits := n.Table.Limits
	limits.MaxSlots = 16
	s, err := OpenStore(n, n.addr, n.l, limits)
	require.NoError(t, err)
	region, ok := s.Region(0)
	require.True(t, ok)
	assert.Equal(t, 16, region.NodeCount())
}

func TestLinksAndTargets(t *testing.T) {
	n := newNetwork(t)
	n.region(0, []nodeDef{
		{linkStart: 1, linkCount: 2},
		{},
	}, []linkDef{
		{area: 0, node: 0},
		{area: 0, node: 1, lanes: 2<<linkLanesFwdShift | 1<<linkLanesBackShift, flags: uint8(LinkShortcut), length: 12},
		{area: 3, node: 0, lanes: 7 << linkLanesFwdShift},
	})
	n.region(3, []nodeDef{{x: 4}}, nil)

	node, ok := n.store.Node(0, 0)
	require.True(t, ok)
	var links []Link
	for l := range node.Links() {
		links = append(links, l)
	}
	require.Len(t, links, 2)

	fwd, back := links[0].LaneCounts()
	assert.Equal(t, 2, fwd)
	assert.Equal(t, 1, back)
	assert.True(t, links[0].Flags().Has(LinkShortcut))
	assert.False(t, links[0].Flags().Has(LinkGpsBothWays))
	assert.Equal(t, uint8(12), links[0].Length())
	assert.Equal(t, MakeHandle(0, 1), links[0].TargetHandle())

	fwd, back = links[1].LaneCounts()
	assert.Equal(t, 7, fwd)
	assert.Equal(t, 0, back)

	target, ok := n.store.LinkTarget(links[1])
	require.True(t, ok)
	assert.Equal(t, uint16(3), target.AreaID())
	assert.Equal(t, float32(1), target.Position().X)

	_, ok = n.store.LinkTarget(Link{})
	assert.False(t, ok)
}

func TestLinksStopAtArrayEnd(t *testing.T) {
	n := newNetwork(t)
	n.region(0, []nodeDef{{linkStart: 1, linkCount: 4}}, []linkDef{{}, {}})
	node, ok := n.store.Node(0, 0)
	require.True(t, ok)

	count := 0
	for range node.Links() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestStreetName(t *testing.T) {
	n := newNetwork(t)
	grove := n.CString("Grove St")
	vinewood := n.CString("Vinewood Blvd")
	n.HashTableOf(n.addr.Offset(n.l.Store.StreetNames), n.l.Store.NameTable, 4, []testutil.Entry{
		{Hash: 0xA1B2C3D4, Value: uint64(grove)},
		{Hash: 0x00000010, Value: uint64(vinewood)},
		{Hash: 0x00000014, Value: 0},
	})
	s, err := OpenStore(n, n.addr, n.l, n.Table.Limits)
	require.NoError(t, err)

	name, ok := s.StreetName(0xA1B2C3D4)
	require.True(t, ok)
	assert.Equal(t, "Grove St", name)

	name, ok = s.StreetName(0x10)
	require.True(t, ok)
	assert.Equal(t, "Vinewood Blvd", name)

	_, ok = s.StreetName(0x14)
	assert.False(t, ok, "null name pointer")
	_, ok = s.StreetName(0xDEAD)
	assert.False(t, ok)

	node := n.only(t, nodeDef{street: 0xA1B2C3D4})
	assert.Equal(t, uint32(0xA1B2C3D4), node.StreetNameHash())
}

func TestClosestNode(t *testing.T) {
	n := newNetwork(t)
	// Area 0 holds a far road node and a near boat node; area 2 holds a road
	// node between them.
	n.region(0, []nodeDef{
		{x: 400},
		{x: 40, flags: [4]uint8{flag0Water, 0, 0, 0}},
	}, nil)
	n.region(2, []nodeDef{{x: 80}}, nil)
	n.region(5, nil, nil)

	best, ok := n.store.ClosestNode(Vector3{}, nil)
	require.True(t, ok)
	assert.Equal(t, MakeHandle(0, 1), best.Handle())

	best, ok = n.store.ClosestNode(Vector3{}, func(node Node) bool {
		return !node.Properties().Has(Boat)
	})
	require.True(t, ok)
	assert.Equal(t, MakeHandle(2, 0), best.Handle())

	_, ok = n.store.ClosestNode(Vector3{}, func(Node) bool { return false })
	assert.False(t, ok)
}

func TestNodeAt(t *testing.T) {
	n := newNetwork(t)
	node := n.only(t, nodeDef{x: 8})
	same := n.store.NodeAt(node.Addr())
	assert.Equal(t, node.Position(), same.Position())
	assert.False(t, n.store.NodeAt(mem.Addr(0)).Valid())
}
