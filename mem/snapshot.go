package mem

import (
	"fmt"

	"github.com/joshuapare/layoutkit/internal/logger"
	"github.com/joshuapare/layoutkit/internal/mmfile"
)

// Snapshot is a memory dump file mapped at the address it was captured from.
// Writes land in a private copy and never reach the file.
type Snapshot struct {
	*Buffer
	path    string
	cleanup func() error
}

// OpenSnapshot maps the dump at path so that its first byte sits at base.
func OpenSnapshot(path string, base Addr) (*Snapshot, error) {
	if base == 0 {
		return nil, fmt.Errorf("snapshot %s: base address must be non-zero", path)
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	logger.Debug("snapshot mapped", "path", path, "base", base.String(), "size", len(data))
	return &Snapshot{Buffer: WrapBuffer(base, data), path: path, cleanup: cleanup}, nil
}

// Path returns the dump file path.
func (s *Snapshot) Path() string { return s.path }

// Close unmaps the dump. The Snapshot must not be used afterwards.
func (s *Snapshot) Close() error {
	if s == nil || s.cleanup == nil {
		return nil
	}
	err := s.cleanup()
	s.cleanup = nil
	s.Buffer = WrapBuffer(s.base, nil)
	logger.Debug("snapshot closed", "path", s.path)
	return err
}
