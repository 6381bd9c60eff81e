package mem

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/layoutkit/internal/buf"
)

var (
	errNullAddr  = errors.New("null address")
	errShortRead = errors.New("short read")
	errNoReader  = errors.New("no memory source")
)

// fill reads len(p) bytes at addr into p.
func fill(r Reader, addr Addr, p []byte) error {
	if r == nil {
		return errNoReader
	}
	if addr == 0 {
		return errNullAddr
	}
	n, err := r.ReadAt(p, addr)
	if err != nil {
		return err
	}
	if n != len(p) {
		return errShortRead
	}
	return nil
}

// Bytes reads n bytes at addr. It returns false on any failure.
func Bytes(r Reader, addr Addr, n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	p := make([]byte, n)
	if fill(r, addr, p) != nil {
		return nil, false
	}
	return p, true
}

// U8 reads a byte at addr. Returns 0 when the read fails.
func U8(r Reader, addr Addr) uint8 {
	var b [1]byte
	if fill(r, addr, b[:]) != nil {
		return 0
	}
	return b[0]
}

// U16 reads a little-endian uint16 at addr. Returns 0 when the read fails.
func U16(r Reader, addr Addr) uint16 {
	var b [2]byte
	if fill(r, addr, b[:]) != nil {
		return 0
	}
	return buf.U16LE(b[:])
}

// U32 reads a little-endian uint32 at addr. Returns 0 when the read fails.
func U32(r Reader, addr Addr) uint32 {
	var b [4]byte
	if fill(r, addr, b[:]) != nil {
		return 0
	}
	return buf.U32LE(b[:])
}

// U64 reads a little-endian uint64 at addr. Returns 0 when the read fails.
func U64(r Reader, addr Addr) uint64 {
	var b [8]byte
	if fill(r, addr, b[:]) != nil {
		return 0
	}
	return buf.U64LE(b[:])
}

// I16 reads a little-endian int16 at addr. Returns 0 when the read fails.
func I16(r Reader, addr Addr) int16 { return int16(U16(r, addr)) }

// I32 reads a little-endian int32 at addr. Returns 0 when the read fails.
func I32(r Reader, addr Addr) int32 { return int32(U32(r, addr)) }

// F32 reads a little-endian float32 at addr. Returns 0 when the read fails.
func F32(r Reader, addr Addr) float32 {
	var b [4]byte
	if fill(r, addr, b[:]) != nil {
		return 0
	}
	return buf.F32LE(b[:])
}

// Ptr reads a 64-bit pointer at addr. Returns the null Addr when the read fails.
func Ptr(r Reader, addr Addr) Addr { return Addr(U64(r, addr)) }

// ReadU8 reads a byte at addr.
func ReadU8(r Reader, addr Addr) (uint8, error) {
	var b [1]byte
	if err := fill(r, addr, b[:]); err != nil {
		return 0, unavailable(addr, 1, err)
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16 at addr.
func ReadU16(r Reader, addr Addr) (uint16, error) {
	var b [2]byte
	if err := fill(r, addr, b[:]); err != nil {
		return 0, unavailable(addr, 2, err)
	}
	return buf.U16LE(b[:]), nil
}

// ReadU32 reads a little-endian uint32 at addr.
func ReadU32(r Reader, addr Addr) (uint32, error) {
	var b [4]byte
	if err := fill(r, addr, b[:]); err != nil {
		return 0, unavailable(addr, 4, err)
	}
	return buf.U32LE(b[:]), nil
}

// ReadU64 reads a little-endian uint64 at addr.
func ReadU64(r Reader, addr Addr) (uint64, error) {
	var b [8]byte
	if err := fill(r, addr, b[:]); err != nil {
		return 0, unavailable(addr, 8, err)
	}
	return buf.U64LE(b[:]), nil
}

// ReadPtr reads a 64-bit pointer at addr.
func ReadPtr(r Reader, addr Addr) (Addr, error) {
	v, err := ReadU64(r, addr)
	return Addr(v), err
}

const cstringChunk = 32

// CString reads a NUL-terminated Windows-1252 string at addr and returns it
// as UTF-8. At most maxLen bytes are consumed; a string without a terminator
// inside that window is truncated. A null addr or an unreadable first byte
// yields ("", false).
func CString(r Reader, addr Addr, maxLen int) (string, bool) {
	if addr == 0 || maxLen <= 0 {
		return "", false
	}
	raw := make([]byte, 0, cstringChunk)
	var chunk [cstringChunk]byte
	for len(raw) < maxLen {
		n := min(cstringChunk, maxLen-len(raw))
		at := addr.Offset(uint32(len(raw)))
		if fill(r, at, chunk[:n]) != nil {
			// The chunk may straddle the end of a mapping; fall back to single bytes.
			n = readBytewise(r, at, chunk[:n])
			if n == 0 {
				if len(raw) == 0 {
					return "", false
				}
				break
			}
		}
		if i := bytes.IndexByte(chunk[:n], 0); i >= 0 {
			raw = append(raw, chunk[:i]...)
			return decodeName(raw), true
		}
		raw = append(raw, chunk[:n]...)
		if n < cstringChunk && len(raw) < maxLen {
			break
		}
	}
	return decodeName(raw), true
}

func readBytewise(r Reader, addr Addr, p []byte) int {
	for i := range p {
		if fill(r, addr.Offset(uint32(i)), p[i:i+1]) != nil {
			return i
		}
	}
	return len(p)
}

func decodeName(raw []byte) string {
	ascii := true
	for _, c := range raw {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
