package mem

import (
	"fmt"

	"github.com/joshuapare/layoutkit/internal/buf"
	"github.com/joshuapare/layoutkit/pkg/types"
)

// Addr is an address in the host process. Zero is the null pointer.
type Addr uint64

// IsNull reports whether a is the null pointer.
func (a Addr) IsNull() bool { return a == 0 }

// Offset returns a+off, or the null Addr if a is null or the sum wraps.
func (a Addr) Offset(off uint32) Addr {
	if a == 0 {
		return 0
	}
	sum, ok := buf.AddAddr(uint64(a), uint64(off))
	if !ok {
		return 0
	}
	return Addr(sum)
}

// Index returns a+index*stride, or the null Addr if a is null or the result wraps.
func (a Addr) Index(index, stride uint64) Addr {
	if a == 0 {
		return 0
	}
	e, ok := buf.Element(uint64(a), index, stride)
	if !ok {
		return 0
	}
	return Addr(e)
}

func (a Addr) String() string { return fmt.Sprintf("0x%x", uint64(a)) }

// Reader reads host memory. A short read must return a non-nil error.
type Reader interface {
	ReadAt(p []byte, addr Addr) (int, error)
}

// Writer writes host memory.
type Writer interface {
	WriteAt(p []byte, addr Addr) (int, error)
}

// Memory is a readable and writable view of host memory.
type Memory interface {
	Reader
	Writer
}

// ErrReadonly is returned by writes through a ReadOnly wrapper.
var ErrReadonly = &types.Error{Kind: types.ErrKindUnsupported, Msg: "memory is read-only"}

type readOnly struct{ Reader }

func (readOnly) WriteAt(p []byte, addr Addr) (int, error) { return 0, ErrReadonly }

// ReadOnly adapts r into a Memory whose writes always fail.
func ReadOnly(r Reader) Memory {
	if m, ok := r.(readOnly); ok {
		return m
	}
	return readOnly{r}
}

func unavailable(addr Addr, n int, cause error) error {
	return types.ErrUnavailable.Wrap(fmt.Errorf("%d bytes at %s: %w", n, addr, cause))
}
