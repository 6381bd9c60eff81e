package skeleton

import "errors"

// ErrNullSkeleton is returned by Open for a null skeleton address.
var ErrNullSkeleton = errors.New("skeleton: null skeleton address")
