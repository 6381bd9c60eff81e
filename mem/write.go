package mem

import (
	"errors"
	"fmt"

	"github.com/joshuapare/layoutkit/internal/buf"
	"github.com/joshuapare/layoutkit/pkg/types"
)

var errShortWrite = errors.New("short write")

func store(w Writer, addr Addr, p []byte) error {
	if w == nil {
		return types.ErrUnavailable.Wrap(errNoReader)
	}
	if addr == 0 {
		return types.ErrUnavailable.Wrap(fmt.Errorf("write %d bytes: %w", len(p), errNullAddr))
	}
	n, err := w.WriteAt(p, addr)
	if err != nil {
		return fmt.Errorf("write %d bytes at %s: %w", len(p), addr, err)
	}
	if n != len(p) {
		return types.ErrUnavailable.Wrap(fmt.Errorf("write %d bytes at %s: %w", len(p), addr, errShortWrite))
	}
	return nil
}

// PutU8 writes a byte at addr.
func PutU8(w Writer, addr Addr, v uint8) error {
	return store(w, addr, []byte{v})
}

// PutU16 writes a little-endian uint16 at addr.
func PutU16(w Writer, addr Addr, v uint16) error {
	var b [2]byte
	buf.PutU16LE(b[:], v)
	return store(w, addr, b[:])
}

// PutU32 writes a little-endian uint32 at addr.
func PutU32(w Writer, addr Addr, v uint32) error {
	var b [4]byte
	buf.PutU32LE(b[:], v)
	return store(w, addr, b[:])
}

// PutU64 writes a little-endian uint64 at addr.
func PutU64(w Writer, addr Addr, v uint64) error {
	var b [8]byte
	buf.PutU64LE(b[:], v)
	return store(w, addr, b[:])
}

// PutF32 writes a little-endian float32 at addr.
func PutF32(w Writer, addr Addr, v float32) error {
	var b [4]byte
	buf.PutF32LE(b[:], v)
	return store(w, addr, b[:])
}

// SetBit sets or clears the bits in mask of the byte at addr, leaving every
// other bit as read.
func SetBit(m Memory, addr Addr, mask uint8, on bool) error {
	cur, err := ReadU8(m, addr)
	if err != nil {
		return err
	}
	next := cur &^ mask
	if on {
		next = cur | mask
	}
	if next == cur {
		return nil
	}
	return PutU8(m, addr, next)
}
