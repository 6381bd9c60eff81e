package layout

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/layoutkit/internal/logger"
	"github.com/joshuapare/layoutkit/pkg/types"
)

//go:embed tables/*.yaml
var builtin embed.FS

type entry struct {
	table      *Table
	constraint *semver.Constraints
}

// Registry maps host versions to offset tables. Tables added later take
// precedence over earlier ones, so user calibrations override built-ins.
//
// A Registry is not safe for concurrent Add and Lookup.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Default returns a Registry holding the built-in tables.
func Default() (*Registry, error) {
	r := NewRegistry()
	files, err := fs.Glob(builtin, "tables/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	for _, name := range files {
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := r.Load(data); err != nil {
			return nil, fmt.Errorf("built-in %s: %w", path.Base(name), err)
		}
	}
	return r, nil
}

// Add validates t and registers it.
func (r *Registry) Add(t *Table) error {
	if t == nil {
		return types.ErrBadLayout.Wrap(errors.New("nil table"))
	}
	t.Limits = t.Limits.WithDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	c, err := semver.NewConstraint(t.Versions)
	if err != nil {
		return types.ErrBadLayout.Wrap(fmt.Errorf("table %s: versions %q: %w", t.Name, t.Versions, err))
	}
	r.entries = append(r.entries, entry{table: t, constraint: c})
	logger.Debug("offset table registered", "name", t.Name, "versions", t.Versions)
	return nil
}

// Load decodes one or more YAML documents, each a Table, and adds them.
func (r *Registry) Load(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	loaded := 0
	for {
		var t Table
		err := dec.Decode(&t)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.ErrBadLayout.Wrap(fmt.Errorf("decode: %w", err))
		}
		if err := r.Add(&t); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return types.ErrBadLayout.Wrap(errors.New("no tables in document"))
	}
	return nil
}

// LoadFile reads a YAML calibration file and adds its tables.
func (r *Registry) LoadFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if err := r.Load(data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Info("offset tables loaded", "file", name)
	return nil
}

// Lookup returns the most recently added table whose constraint admits version.
func (r *Registry) Lookup(version string) (*Table, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, types.ErrUnknownVersion.Wrap(fmt.Errorf("parse %q: %w", version, err))
	}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.constraint.Check(v) {
			logger.Info("offset table selected", "version", version, "table", e.table.Name)
			return e.table, nil
		}
	}
	return nil, types.ErrUnknownVersion.Wrap(fmt.Errorf("version %s", version))
}

// Tables returns the registered tables in registration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.table
	}
	return out
}
