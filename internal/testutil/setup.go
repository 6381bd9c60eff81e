// Package testutil builds fake host memory for decoder tests: a mem.Buffer
// pinned at a realistic address, the calibrated offset table for a default
// host version, and helpers that lay out records the way the host does.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

const (
	// HostBase is where fake host memory starts.
	HostBase mem.Addr = 0x7ff6a0000000

	// DefaultVersion is the host version whose offset table fixtures use.
	DefaultVersion = "1.0.2944"
)

// Host is fake host memory plus the offset table that describes it.
type Host struct {
	*mem.Buffer
	t     testing.TB
	Table *layout.Table
}

// NewHost returns size bytes of zeroed host memory and the DefaultVersion table.
//
// Example:
//
//	h := testutil.NewHost(t, 0x10000)
//	node := h.Alloc(int(h.Table.Path.Node.Size))
//	h.PutU16(node+mem.Addr(h.Table.Path.Node.AreaID), 7)
func NewHost(t testing.TB, size int) *Host {
	t.Helper()
	reg, err := layout.Default()
	require.NoError(t, err)
	tbl, err := reg.Lookup(DefaultVersion)
	require.NoError(t, err)
	return &Host{Buffer: mem.NewBuffer(HostBase, size), t: t, Table: tbl}
}

// Alloc reserves size zeroed bytes and fails the test when memory runs out.
func (h *Host) Alloc(size int) mem.Addr {
	h.t.Helper()
	addr := h.Buffer.Alloc(size)
	require.NotZero(h.t, addr, "fake host memory exhausted allocating %d bytes", size)
	return addr
}

// CString stores s with a NUL terminator and returns its address.
func (h *Host) CString(s string) mem.Addr {
	h.t.Helper()
	addr := h.Buffer.AllocCString(s)
	require.NotZero(h.t, addr, "fake host memory exhausted storing %q", s)
	return addr
}

// PutU8 writes v at addr.
func (h *Host) PutU8(addr mem.Addr, v uint8) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU8(h.Buffer, addr, v))
}

// PutU16 writes v at addr.
func (h *Host) PutU16(addr mem.Addr, v uint16) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU16(h.Buffer, addr, v))
}

// PutI16 writes v at addr.
func (h *Host) PutI16(addr mem.Addr, v int16) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU16(h.Buffer, addr, uint16(v)))
}

// PutU32 writes v at addr.
func (h *Host) PutU32(addr mem.Addr, v uint32) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU32(h.Buffer, addr, v))
}

// PutI32 writes v at addr.
func (h *Host) PutI32(addr mem.Addr, v int32) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU32(h.Buffer, addr, uint32(v)))
}

// PutF32 writes v at addr.
func (h *Host) PutF32(addr mem.Addr, v float32) {
	h.t.Helper()
	require.NoError(h.t, mem.PutF32(h.Buffer, addr, v))
}

// PutPtr writes the pointer p at addr.
func (h *Host) PutPtr(addr, p mem.Addr) {
	h.t.Helper()
	require.NoError(h.t, mem.PutU64(h.Buffer, addr, uint64(p)))
}
