package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/layoutkit/pkg/types"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	names := []string{}
	for _, tbl := range r.Tables() {
		names = append(names, tbl.Name)
	}
	require.Equal(t, []string{"b2944", "b3095"}, names)
}

func TestLookupByVersion(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	tests := []struct {
		version string
		want    string
	}{
		{"1.0.2944", "b2944"},
		{"1.0.3028", "b2944"},
		{"1.0.3095", "b3095"},
		{"1.0.3258", "b3095"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			tbl, err := r.Lookup(tt.version)
			require.NoError(t, err)
			require.Equal(t, tt.want, tbl.Name)
		})
	}
}

func TestLookupUnknownVersion(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	for _, v := range []string{"1.0.2802", "not-a-version"} {
		_, err := r.Lookup(v)
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrUnknownVersion), "version %q", v)
		kind, _ := types.KindOf(err)
		require.Equal(t, types.ErrKindNotFound, kind)
	}
}

func TestBuiltinOffsets(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)
	tbl, err := r.Lookup("1.0.2944")
	require.NoError(t, err)

	require.Equal(t, uint32(0x28), tbl.Path.Node.Size)
	require.Equal(t, uint32(0x22), tbl.Path.Node.PosZ)
	require.Equal(t, uint32(0x1640), tbl.Path.Store.Regions)
	require.Equal(t, uint32(1024), tbl.Path.Store.RegionCount)
	require.Equal(t, uint32(8), tbl.Path.Store.NameTable.ValueSize)
	require.Equal(t, uint32(0x50), tbl.Skeleton.BoneSize)
	require.Equal(t, uint32(4), tbl.Skeleton.IDTable.ValueSize)
	require.Equal(t, uint32(0xF0), tbl.Fragment.TypeLODGroup)
	require.Equal(t, DefaultLimits, tbl.Limits, "zero limits take defaults")

	newer, err := r.Lookup("1.0.3095")
	require.NoError(t, err)
	require.Equal(t, uint32(0x80), newer.Fragment.InstType)
	require.Equal(t, tbl.Skeleton, newer.Skeleton)
}

func TestLoadFileOverridesBuiltin(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	base, err := r.Lookup("1.0.3095")
	require.NoError(t, err)
	override := *base
	override.Name = "local-3095"
	override.Versions = "~1.0.3095"
	override.Fragment.InstType = 0x88

	data := mustMarshal(t, &override)
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, r.LoadFile(path))

	got, err := r.Lookup("1.0.3095")
	require.NoError(t, err)
	require.Equal(t, "local-3095", got.Name)
	require.Equal(t, uint32(0x88), got.Fragment.InstType)

	// Outside the override's constraint the built-in still answers.
	got, err = r.Lookup("1.1.0")
	require.NoError(t, err)
	require.Equal(t, "b3095", got.Name)
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "name: x\nversions: '>=1.0.0'\nbogus: 1\n"},
		{"not yaml", "name: [unterminated"},
		{"missing sizes", "name: x\nversions: '>=1.0.0'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Load([]byte(tt.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, types.ErrBadLayout))
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	require.Error(t, NewRegistry().LoadFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestAddRejectsBadConstraint(t *testing.T) {
	tbl := validTable(t)
	tbl.Versions = "this is not a constraint"
	err := NewRegistry().Add(tbl)
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrBadLayout))

	require.Error(t, NewRegistry().Add(nil))
}
