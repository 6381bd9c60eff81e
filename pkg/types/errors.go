package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed offset table or record layout
	ErrKindConfig                     // configuration promised something memory does not hold
	ErrKindNotFound                   // ordinary miss (hash, handle, version)
	ErrKindUnavailable                // backing memory not readable or not streamed in
	ErrKindUnsupported                // platform or feature not supported
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindConfig:
		return "config"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindUnavailable:
		return "unavailable"
	case ErrKindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind and message, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Msg: e.Msg, Err: cause}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	for err != nil {
		if te, ok := err.(*Error); ok && te != nil {
			return te.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotFound indicates an ordinary lookup miss.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrUnavailable indicates the host memory could not be read.
	ErrUnavailable = &Error{Kind: ErrKindUnavailable, Msg: "memory unavailable"}
	// ErrBadLayout indicates an offset table failed validation.
	ErrBadLayout = &Error{Kind: ErrKindFormat, Msg: "invalid offset table"}
	// ErrNoBuckets indicates a hash table that configuration promised was populated has zero buckets.
	ErrNoBuckets = &Error{Kind: ErrKindConfig, Msg: "hash table has no buckets"}
	// ErrUnknownVersion indicates no offset table matches the host binary version.
	ErrUnknownVersion = &Error{Kind: ErrKindNotFound, Msg: "no offset table for version"}
	// ErrUnsupported indicates the platform lacks a live memory backend.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported platform"}
)
