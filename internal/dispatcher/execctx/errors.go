package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates the engine is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrMissingResolver indicates the block resolver is required but not set.
	ErrMissingResolver = errors.New("execution context: resolver is required")

	// ErrMissingRenderer indicates renderer is required but not set.
	ErrMissingRenderer = errors.New("execution context: renderer is required")

	// ErrUnsupportedLanguage indicates the document is not in a language the
	// command applies to.
	ErrUnsupportedLanguage = errors.New("execution context: unsupported language")
)
