package engine

import (
	"github.com/dshills/pyselect/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultTabWidth          = 4
	DefaultMaxHistoryEntries = 100
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding forces the line ending style instead of detecting it.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = &ending
	}
}

// WithMaxHistoryEntries sets the maximum number of remembered selections.
func WithMaxHistoryEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxHistoryEntries = max
		}
	}
}

// WithPath records the file the content came from.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithLanguageID sets the document's language identifier.
func WithLanguageID(id string) Option {
	return func(e *Engine) {
		e.languageID = id
	}
}
