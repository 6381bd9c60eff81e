package pathfind

import "errors"

var (
	// ErrInvalidNode is returned when writing through a zero or unresolved Node.
	ErrInvalidNode = errors.New("pathfind: invalid node")

	// ErrNullStore is returned by OpenStore for a null store address.
	ErrNullStore = errors.New("pathfind: null store address")
)
