// Package cursor provides the selection model block selection works on.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor).
//
// Positions are buffer.Point values. Block resolution only cares about
// lines, so a Selection converts to and from block.Selection and
// block.Range:
//
//	sel := cursor.NewCursorSelection(buffer.Point{Line: 4})
//	r, err := resolver.Resolve(snap, sel.ToBlock())
//	sel = cursor.LineSelection(r, snap.LineLen(r.EndLine))
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
