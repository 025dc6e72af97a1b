// Package block finds the logical block of Python-like source that follows or
// contains a cursor or selection.
//
// The package is the decision-making core of block selection. It works on a
// read-only view of a document (Buffer and Line) and a Selection, and
// returns the inclusive line Range an editor should select next. It never
// reads editor state itself: hosts snapshot the document and selection and
// pass them in.
//
// Line Classification:
//
// Every non-blank line is classified by a token scan of its first word:
//
//   - BlockOpener: a block keyword (if, for, try, ...) followed by
//     whitespace or ':'
//   - ClassOrFunction: def or class (optionally after async) followed by a
//     name
//   - Decorator: '@' followed by an identifier character
//   - Plain: anything else, including return and raise
//
// Resolution Modes:
//
//   - ModeBlock (default): an opener anchor selects its whole indented
//     body, tolerating blank lines; a plain anchor selects the statement
//     group around it, bounded by blank lines.
//   - ModeForward: extends downward from the line after the selection while
//     lines stay at or below the selection's indentation.
//
// Repeated resolution, each time feeding the previous result back in as the
// selection, grows the selection downward and never retracts its start.
//
// Errors:
//
// ErrNoMoreLines, ErrBlankAnchor and ErrNoExpansion all mean "no selection
// possible". Hosts leave the current selection unchanged; IsNoSelection
// matches any of them.
//
// Basic usage:
//
//	r := block.NewResolver()
//	rng, err := r.Resolve(snapshot, block.Cursor(12))
//	if block.IsNoSelection(err) {
//	    return // keep the current selection
//	}
package block
