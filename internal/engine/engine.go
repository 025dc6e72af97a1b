package engine

import (
	"io"
	"sync"

	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/engine/cursor"
	"github.com/dshills/pyselect/internal/engine/history"
)

// Type aliases for convenience.
type (
	Point      = buffer.Point
	RevisionID = buffer.RevisionID
	LineEnding = buffer.LineEnding
	Selection  = cursor.Selection
)

// Engine holds one open document and its selection.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	sel     cursor.Selection
	history *history.History

	path       string
	languageID string

	tabWidth          int
	lineEnding        *buffer.LineEnding
	maxHistoryEntries int
	initContent       string
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		tabWidth:          DefaultTabWidth,
		maxHistoryEntries: DefaultMaxHistoryEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewHistory(e.maxHistoryEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	opts := []buffer.Option{buffer.WithTabWidth(e.tabWidth)}
	if e.lineEnding != nil {
		opts = append(opts, buffer.WithLineEnding(*e.lineEnding))
	}
	return opts
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	var err error
	e.buf, err = buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line int) string {
	return e.buf.LineText(line)
}

// LineLen returns the length of a specific line in bytes.
func (e *Engine) LineLen(line int) int {
	return e.buf.LineLen(line)
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// TabWidth returns the buffer's tab width.
func (e *Engine) TabWidth() int {
	return e.buf.TabWidth()
}

// LineEnding returns the buffer's line ending style.
func (e *Engine) LineEnding() LineEnding {
	return e.buf.LineEnding()
}

// Path returns the file the document was loaded from, if any.
func (e *Engine) Path() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.path
}

// LanguageID returns the document's language identifier.
func (e *Engine) LanguageID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.languageID
}

// Snapshot returns a read-only snapshot of the buffer.
func (e *Engine) Snapshot() *buffer.Snapshot {
	return e.buf.Snapshot()
}

// State returns a buffer snapshot and the selection current at that
// snapshot's revision.
func (e *Engine) State() (*buffer.Snapshot, cursor.Selection) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot(), e.sel
}

// ============================================================================
// Selection
// ============================================================================

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SetSelection replaces the selection without recording history.
// Lines are clamped to the buffer.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = sel.Clamp(e.buf.LineCount())
}

// ExpandSelection replaces the selection and records the previous one so
// ShrinkSelection can restore it.
func (e *Engine) ExpandSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Push(e.sel, e.buf.RevisionID())
	e.sel = sel.Clamp(e.buf.LineCount())
}

// ShrinkSelection restores the selection replaced by the last expansion.
func (e *Engine) ShrinkSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.history.Undo(e.sel, e.buf.RevisionID())
	if err != nil {
		return ErrNothingToShrink
	}
	e.sel = entry.Selection.Clamp(e.buf.LineCount())
	return nil
}

// RegrowSelection re-applies the expansion undone by ShrinkSelection.
func (e *Engine) RegrowSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.history.Redo(e.sel, e.buf.RevisionID())
	if err != nil {
		return ErrNothingToRegrow
	}
	e.sel = entry.Selection.Clamp(e.buf.LineCount())
	return nil
}

// CanShrink reports whether an earlier selection is recorded.
func (e *Engine) CanShrink() bool {
	return e.history.CanUndo()
}

// ============================================================================
// Content
// ============================================================================

// SetContent replaces the document text. The selection collapses to the
// start of the buffer and history is cleared.
func (e *Engine) SetContent(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf.SetText(content)
	e.sel = cursor.Selection{}
	e.history.Clear()
}
