package dispatcher

import "errors"

var (
	// ErrUnknownCommand is returned for a command nothing is registered for.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrEmptyCommand is returned for an action without a name.
	ErrEmptyCommand = errors.New("empty command name")

	// ErrHandlerPanic wraps a recovered handler panic.
	ErrHandlerPanic = errors.New("command handler panicked")
)
