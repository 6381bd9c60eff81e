package mem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBitPreservesOtherBits(t *testing.T) {
	tests := []struct {
		name string
		init uint8
		mask uint8
		on   bool
		want uint8
	}{
		{"set into zero", 0x00, 0x01, true, 0x01},
		{"set preserves neighbours", 0xa4, 0x01, true, 0xa5},
		{"clear preserves neighbours", 0xff, 0x08, false, 0xf7},
		{"set already set", 0x81, 0x01, true, 0x81},
		{"clear already clear", 0x80, 0x01, false, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(0x1000, 4)
			b.Bytes()[2] = tt.init
			require.NoError(t, SetBit(b, 0x1002, tt.mask, tt.on))
			require.Equal(t, tt.want, b.Bytes()[2])
		})
	}
}

func TestSetBitUnreadable(t *testing.T) {
	require.Error(t, SetBit(NewBuffer(0x1000, 4), 0x2000, 0x01, true))
}

func TestWritesRejectNull(t *testing.T) {
	b := NewBuffer(0x1000, 4)
	require.Error(t, PutU8(b, 0, 1))
	require.Error(t, PutU16(nil, 0x1000, 1))
}

func TestReadOnly(t *testing.T) {
	b := NewBuffer(0x1000, 4)
	b.Bytes()[0] = 0x40
	ro := ReadOnly(b)

	require.Equal(t, uint8(0x40), U8(ro, 0x1000))
	err := PutU8(ro, 0x1000, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrReadonly))
	require.Equal(t, uint8(0x40), b.Bytes()[0])

	require.Equal(t, ro, ReadOnly(ro), "wrapping twice is idempotent")
}
