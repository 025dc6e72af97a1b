package app

import "errors"

// Viewer errors.
var (
	// ErrQuit signals that the viewer should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called on a running viewer.
	ErrAlreadyRunning = errors.New("viewer already running")
)
