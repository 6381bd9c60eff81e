package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/internal/testutil"
	"github.com/joshuapare/layoutkit/mem"
	"github.com/joshuapare/layoutkit/pathfind"
)

const groveHash = 0xBEEF0001

// pathFixture lays out a store whose area 7 holds two nodes. Node 1 sits at
// (10, 10, 10) on Grove St, has a traffic light and one link back to node 0.
func pathFixture(t *testing.T) (*testutil.Host, mem.Addr) {
	t.Helper()
	h := testutil.NewHost(t, 0x10000)
	l := h.Table.Path
	store := h.Alloc(int(l.Store.StreetNames) + 0x20)
	region := h.Alloc(0x20)
	h.PutPtr(store.Offset(l.Store.Regions).Index(7, 8), region)

	nodes := h.Alloc(2 * int(l.Node.Size))
	for i := range 2 {
		n := nodes.Index(uint64(i), uint64(l.Node.Size))
		h.PutU16(n.Offset(l.Node.AreaID), 7)
		h.PutU16(n.Offset(l.Node.NodeID), uint16(i))
	}
	n1 := nodes.Index(1, uint64(l.Node.Size))
	h.PutI16(n1.Offset(l.Node.PosX), 40)
	h.PutI16(n1.Offset(l.Node.PosY), 40)
	h.PutI16(n1.Offset(l.Node.PosZ), 320)
	h.PutU8(n1.Offset(l.Node.Flags1), 1<<3)
	h.PutU8(n1.Offset(l.Node.Flags2), 1<<3)
	h.PutU32(n1.Offset(l.Node.StreetName), groveHash)

	links := h.Alloc(int(l.Link.Size))
	h.PutU16(links.Offset(l.Link.AreaID), 7)
	h.PutU16(links.Offset(l.Link.NodeID), 0)
	h.PutU8(links.Offset(l.Link.Lanes), 2<<5|1<<2)
	h.PutU8(links.Offset(l.Link.Length), 9)

	h.PutPtr(region.Offset(l.Region.Nodes), nodes)
	h.PutU32(region.Offset(l.Region.NodeCount), 2)
	h.PutPtr(region.Offset(l.Region.Links), links)
	h.PutU32(region.Offset(l.Region.LinkCount), 1)

	h.HashTableOf(store.Offset(l.Store.StreetNames), l.Store.NameTable, 2, []testutil.Entry{
		{Hash: groveHash, Value: uint64(h.CString("Grove St"))},
	})
	return h, store
}

func TestParseNodeRef(t *testing.T) {
	tests := []struct {
		in      string
		want    int32
		wantErr bool
	}{
		{"7:1", pathfind.MakeHandle(7, 1), false},
		{"0x00010008", pathfind.MakeHandle(7, 1), false},
		{"65544", pathfind.MakeHandle(7, 1), false},
		{"0xFFFF0006", pathfind.MakeHandle(5, 0xFFFF), false},
		{"7:70000", 0, true},
		{"x:1", 0, true},
		{"0x1FFFFFFFF", 0, true},
		{"node", 0, true},
	}
	for _, tt := range tests {
		got, err := parseNodeRef(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNodeCommand(t *testing.T) {
	h, store := pathFixture(t)
	useSnapshot(t, h)
	t.Cleanup(resetFlags)
	nodeLinks = true

	output, err := captureOutput(t, func() error { return runNode([]string{store.String(), "7:1"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Node 7:1 (handle 0x00010008)")
	assert.Contains(t, output, "10.00, 10.00, 10.00")
	assert.Contains(t, output, "TrafficLight")
	assert.NotContains(t, output, "GiveWay")
	assert.Contains(t, output, "Street:     Grove St")
	assert.Contains(t, output, "-> 7:0")
	assert.Contains(t, output, "lanes 2/1")
}

func TestNodeCommandJSON(t *testing.T) {
	h, store := pathFixture(t)
	useSnapshot(t, h)
	t.Cleanup(resetFlags)
	jsonOut = true

	output, err := captureOutput(t, func() error { return runNode([]string{store.String(), "7:0"}) })
	require.NoError(t, err)

	var got nodeInfo
	decodeJSON(t, output, &got)
	assert.Equal(t, uint16(7), got.Area)
	assert.Equal(t, uint16(0), got.Node)
	assert.Equal(t, "None", got.Properties)
	assert.Empty(t, got.Street)
	assert.Empty(t, got.Links, "links only with --links")
}

func TestNodeCommandNotLoaded(t *testing.T) {
	h, store := pathFixture(t)
	useSnapshot(t, h)
	t.Cleanup(resetFlags)

	_, err := captureOutput(t, func() error { return runNode([]string{store.String(), "8:0"}) })
	require.ErrorContains(t, err, "node 8:0 is not loaded")
}
