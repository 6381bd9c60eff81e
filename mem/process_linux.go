//go:build linux

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/layoutkit/internal/logger"
)

// Process reads and writes the memory of a live process through
// process_vm_readv/process_vm_writev. The caller needs ptrace access to pid.
type Process struct {
	pid int
}

// OpenProcess attaches to pid. No handle is held; each call is a syscall.
func OpenProcess(pid int) (*Process, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("open process: invalid pid %d", pid)
	}
	if err := unix.Kill(pid, 0); err != nil {
		return nil, unavailable(0, 0, fmt.Errorf("pid %d: %w", pid, err))
	}
	logger.Info("process attached", "pid", pid)
	return &Process{pid: pid}, nil
}

// PID returns the attached process id.
func (p *Process) PID() int { return p.pid }

// ReadAt reads len(p) bytes at addr from the process.
func (p *Process) ReadAt(b []byte, addr Addr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	local := []unix.Iovec{{Base: &b[0]}}
	local[0].SetLen(len(b))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(b)}}
	n, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return n, unavailable(addr, len(b), err)
	}
	if n != len(b) {
		return n, unavailable(addr, len(b), errShortRead)
	}
	return n, nil
}

// WriteAt writes b at addr in the process.
func (p *Process) WriteAt(b []byte, addr Addr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	local := []unix.Iovec{{Base: &b[0]}}
	local[0].SetLen(len(b))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(b)}}
	n, err := unix.ProcessVMWritev(p.pid, local, remote, 0)
	if err != nil {
		return n, unavailable(addr, len(b), err)
	}
	if n != len(b) {
		return n, unavailable(addr, len(b), errShortWrite)
	}
	return n, nil
}

// Close releases the process. It is a no-op on Linux.
func (p *Process) Close() error { return nil }
