package fragment

import "errors"

// ErrInvalidView is returned when writing through a zero Inst or TypeChild.
var ErrInvalidView = errors.New("fragment: write through invalid view")
