// Package history records selection changes so block expansion can be
// stepped back and forth.
//
// Each time a selection is expanded the previous selection is pushed onto
// the undo stack. Undo returns the selection to restore and moves the
// current one onto the redo stack; any new expansion clears the redo stack.
//
// Entries carry the buffer revision they were taken at. An entry from an
// older revision still restores, but callers clamp it to the current buffer.
//
// History is safe for concurrent use.
package history
