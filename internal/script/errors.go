package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a run exceeds its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned by Call when the global is not a function.
	ErrNotFunction = errors.New("not a lua function")
)
