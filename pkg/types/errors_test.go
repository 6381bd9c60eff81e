package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrKindString(t *testing.T) {
	tests := map[ErrKind]string{
		ErrKindFormat:      "format",
		ErrKindConfig:      "config",
		ErrKindNotFound:    "not-found",
		ErrKindUnavailable: "unavailable",
		ErrKindUnsupported: "unsupported",
		ErrKind(99):        "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())

	wrapped := ErrUnavailable.Wrap(errors.New("8 bytes at 0x10"))
	assert.Equal(t, "memory unavailable: 8 bytes at 0x10", wrapped.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestWrappedSentinelStillMatches(t *testing.T) {
	cause := errors.New("EFAULT")
	err := fmt.Errorf("bitmap pool: %w", ErrUnavailable.Wrap(cause))

	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSameKindDifferentMessageDoesNotMatch(t *testing.T) {
	// Both are not-found kinds, but an unknown version is not a hash miss.
	assert.NotErrorIs(t, ErrUnknownVersion, ErrNotFound)
	assert.NotErrorIs(t, ErrNoBuckets, ErrNotFound)
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("lookup: %w", ErrNoBuckets))
	require.True(t, ok)
	assert.Equal(t, ErrKindConfig, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestErrorsAs(t *testing.T) {
	var te *Error
	require.ErrorAs(t, fmt.Errorf("open: %w", ErrBadLayout.Wrap(errors.New("zero stride"))), &te)
	assert.Equal(t, ErrKindFormat, te.Kind)
	assert.Equal(t, "zero stride", te.Unwrap().Error())
}
