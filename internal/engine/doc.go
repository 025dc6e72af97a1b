// Package engine provides the document model block selection runs against.
//
// The engine package serves as the facade, combining a line buffer, the
// current selection, and a selection history into a thread-safe API a host
// (CLI, protocol server, viewer) drives.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line-indexed text with decoding and line-ending handling
//   - cursor: anchor/head selections and their conversion to block lines
//   - history: stack of selections replaced by expansion
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes. State returns the
// buffer snapshot and selection taken under one lock, so a resolution never
// sees a selection from one revision paired with text from another.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent(src), engine.WithLanguageID("python"))
//	e.SetSelection(cursor.NewCursorSelection(buffer.Point{Line: 3}))
//
//	snap, sel := e.State()
//	r, err := block.NewResolver().Resolve(snap, sel.ToBlock())
//	if err == nil {
//		e.ExpandSelection(cursor.LineSelection(r, snap.LineLen(r.EndLine)))
//	}
//
//	// Step back to the cursor.
//	_ = e.ShrinkSelection()
package engine
