package cursor

import (
	"fmt"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
type Selection struct {
	Anchor Point
	Head   Point
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// LineSelection selects whole lines of a resolved block: from column 0 of
// its first line to endColumn on its last line, which callers set to that
// line's length.
func LineSelection(r block.Range, endColumn int) Selection {
	return Selection{
		Anchor: buffer.LineStart(r.StartLine),
		Head:   Point{Line: r.EndLine, Column: endColumn},
	}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Head.Before(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Head.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

// Range returns the selection as a point range (always Start <= End).
func (s Selection) Range() buffer.PointRange {
	return buffer.NewPointRange(s.Start(), s.End())
}

// Cursor returns the head position.
func (s Selection) Cursor() Point {
	return s.Head
}

// IsBackward returns true if the selection extends backward (head < anchor).
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Extend returns a new selection with the head moved to p.
func (s Selection) Extend(p Point) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// MoveTo returns a new collapsed selection at p.
func (s Selection) MoveTo(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// CollapseToStart collapses the selection to its start position.
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Anchor: start, Head: start}
}

// Clamp returns a selection whose lines lie within [0, lineCount).
// Columns are left alone.
func (s Selection) Clamp(lineCount int) Selection {
	return Selection{Anchor: clampLine(s.Anchor, lineCount), Head: clampLine(s.Head, lineCount)}
}

func clampLine(p Point, lineCount int) Point {
	if p.Line < 0 {
		return Point{}
	}
	if lineCount > 0 && p.Line >= lineCount {
		p.Line = lineCount - 1
	}
	return p
}

// ToBlock converts the selection to the line form block resolution takes.
// The active line is the head's line.
func (s Selection) ToBlock() block.Selection {
	if s.IsEmpty() {
		return block.Cursor(s.Head.Line)
	}
	lines := s.Range().Lines()
	return block.Selection{
		StartLine:  lines.StartLine,
		EndLine:    lines.EndLine,
		ActiveLine: s.Head.Line,
	}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor, dir, s.Head)
}
