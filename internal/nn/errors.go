package nn

import "errors"

// Common errors.
var (
	// ErrNoPendingForward is returned by Backward when the layer has no
	// cached forward input.
	ErrNoPendingForward = errors.New("backward called before forward")
)
