package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNothingToShrink indicates no earlier selection was recorded.
	ErrNothingToShrink = errors.New("no earlier selection")

	// ErrNothingToRegrow indicates no shrunk selection can be restored.
	ErrNothingToRegrow = errors.New("no later selection")
)
