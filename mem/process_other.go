//go:build !linux && !windows

package mem

import (
	"fmt"

	"github.com/joshuapare/layoutkit/pkg/types"
)

// Process is unavailable on this platform.
type Process struct {
	pid int
}

// OpenProcess always fails on this platform.
func OpenProcess(pid int) (*Process, error) {
	return nil, types.ErrUnsupported.Wrap(fmt.Errorf("live process memory (pid %d)", pid))
}

// PID returns the process id.
func (p *Process) PID() int { return p.pid }

// ReadAt always fails on this platform.
func (p *Process) ReadAt(b []byte, addr Addr) (int, error) { return 0, types.ErrUnsupported }

// WriteAt always fails on this platform.
func (p *Process) WriteAt(b []byte, addr Addr) (int, error) { return 0, types.ErrUnsupported }

// Close is a no-op.
func (p *Process) Close() error { return nil }
