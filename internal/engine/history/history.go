package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no size is given.
const DefaultMaxEntries = 100

// Entry is one recorded selection.
type Entry struct {
	Selection cursor.Selection
	Revision  buffer.RevisionID
	Timestamp time.Time
}

// History manages undo/redo state for selections.
type History struct {
	mu sync.Mutex

	undoStack []Entry
	redoStack []Entry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records sel as the selection to return to.
// Clears the redo stack.
func (h *History) Push(sel cursor.Selection, rev buffer.RevisionID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, Entry{
		Selection: sel,
		Revision:  rev,
		Timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last recorded selection. current is kept for Redo.
func (h *History) Undo(current cursor.Selection, rev buffer.RevisionID) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, Entry{Selection: current, Revision: rev, Timestamp: time.Now()})
	return entry, nil
}

// Redo re-applies the last undone selection. current is kept for Undo.
func (h *History) Redo(current cursor.Selection, rev buffer.RevisionID) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Entry{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, Entry{Selection: current, Revision: rev, Timestamp: time.Now()})
	return entry, nil
}

// CanUndo returns true if there are entries to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if there are entries to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
