package block

import "errors"

// Errors returned by resolution. All of them mean no selection is possible
// and the caller should leave its selection untouched.
var (
	// ErrNoMoreLines indicates the scan would start at or past the end of the
	// buffer, including after skipping trailing blank lines.
	ErrNoMoreLines = errors.New("no more lines")

	// ErrBlankAnchor indicates the anchor line is blank.
	ErrBlankAnchor = errors.New("anchor line is blank")

	// ErrNoExpansion indicates the scan produced an inverted range: the
	// following content is less indented than the selection.
	ErrNoExpansion = errors.New("no expansion possible")
)

// ErrInvalidSelection is returned for a selection with a negative line or
// an end before its start. Unlike the errors above it is a caller bug, not
// a no-selection signal.
var ErrInvalidSelection = errors.New("invalid selection")

// IsNoSelection reports whether err is one of the no-selection signals.
func IsNoSelection(err error) bool {
	return errors.Is(err, ErrNoMoreLines) ||
		errors.Is(err, ErrBlankAnchor) ||
		errors.Is(err, ErrNoExpansion)
}
