//go:build windows

package mem

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/layoutkit/internal/logger"
)

const processAccess = windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE |
	windows.PROCESS_VM_OPERATION | windows.PROCESS_QUERY_LIMITED_INFORMATION

// Process reads and writes the memory of a live process through
// ReadProcessMemory/WriteProcessMemory.
type Process struct {
	pid    int
	handle windows.Handle
}

// OpenProcess opens pid with VM read/write access.
func OpenProcess(pid int) (*Process, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("open process: invalid pid %d", pid)
	}
	h, err := windows.OpenProcess(processAccess, false, uint32(pid))
	if err != nil {
		return nil, unavailable(0, 0, fmt.Errorf("pid %d: %w", pid, err))
	}
	logger.Info("process attached", "pid", pid)
	return &Process{pid: pid, handle: h}, nil
}

// PID returns the attached process id.
func (p *Process) PID() int { return p.pid }

// ReadAt reads len(b) bytes at addr from the process.
func (p *Process) ReadAt(b []byte, addr Addr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	var n uintptr
	if err := windows.ReadProcessMemory(p.handle, uintptr(addr), &b[0], uintptr(len(b)), &n); err != nil {
		return int(n), unavailable(addr, len(b), err)
	}
	if int(n) != len(b) {
		return int(n), unavailable(addr, len(b), errShortRead)
	}
	return int(n), nil
}

// WriteAt writes b at addr in the process.
func (p *Process) WriteAt(b []byte, addr Addr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	var n uintptr
	if err := windows.WriteProcessMemory(p.handle, uintptr(addr), &b[0], uintptr(len(b)), &n); err != nil {
		return int(n), unavailable(addr, len(b), err)
	}
	if int(n) != len(b) {
		return int(n), unavailable(addr, len(b), errShortWrite)
	}
	return int(n), nil
}

// Close releases the process handle.
func (p *Process) Close() error {
	if p.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(p.handle)
	p.handle = 0
	return err
}
