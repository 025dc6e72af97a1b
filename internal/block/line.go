package block

import (
	"fmt"
	"unicode"
)

// Line is a read-only view of one buffer line.
type Line interface {
	// Text returns the raw line text without its line ending.
	Text() string

	// IsBlank reports whether the line is empty or holds only whitespace.
	IsBlank() bool

	// Indent returns the number of whitespace characters before the first
	// non-whitespace one.
	// For a blank line this is the length of its whitespace; check IsBlank
	// before relying on it.
	Indent() int

	// Number returns the 0-indexed line number.
	Number() int
}

// Buffer is a read-only, ordered sequence of lines.
// LineAt(n).Number() must equal n, and the buffer must not change while a
// resolution is running.
type Buffer interface {
	LineCount() int
	LineAt(n int) Line
}

// Selection describes the caller's current cursor or line selection.
// Lines are 0-indexed. For a cursor, Empty is true and ActiveLine holds the
// cursor line; StartLine and EndLine equal ActiveLine.
type Selection struct {
	StartLine  int
	EndLine    int
	ActiveLine int
	Empty      bool
}

// Cursor returns an empty selection on the given line.
func Cursor(line int) Selection {
	return Selection{StartLine: line, EndLine: line, ActiveLine: line, Empty: true}
}

// Lines returns a non-empty selection spanning start through end.
// The arguments are swapped if end < start. The active line is end.
func Lines(start, end int) Selection {
	if end < start {
		start, end = end, start
	}
	return Selection{StartLine: start, EndLine: end, ActiveLine: end}
}

// validate rejects negative lines, an end before the start and an active
// line outside the selection.
func (s Selection) validate() error {
	if s.StartLine < 0 || s.EndLine < s.StartLine ||
		s.ActiveLine < s.StartLine || s.ActiveLine > s.EndLine {
		return fmt.Errorf("%w: %s", ErrInvalidSelection, s)
	}
	return nil
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.Empty {
		return fmt.Sprintf("Cursor(%d)", s.ActiveLine)
	}
	return fmt.Sprintf("Lines(%d-%d)", s.StartLine, s.EndLine)
}

// Range is an inclusive span of 0-indexed lines.
type Range struct {
	StartLine int
	EndLine   int
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d]", r.StartLine, r.EndLine)
}

// IsInverted reports whether the range ends before it starts.
func (r Range) IsInverted() bool {
	return r.EndLine < r.StartLine
}

// Len returns the number of lines covered, or 0 for an inverted range.
func (r Range) Len() int {
	if r.IsInverted() {
		return 0
	}
	return r.EndLine - r.StartLine + 1
}

// Contains reports whether line lies within the range.
func (r Range) Contains(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// Selection returns the range as a non-empty line selection.
func (r Range) Selection() Selection {
	return Lines(r.StartLine, r.EndLine)
}

// MeasureIndent returns the number of leading whitespace characters in
// text and whether the text consists of nothing else. Whitespace is any
// Unicode space, so form feeds and no-break spaces count; the indent is a
// rune count, not a byte offset.
func MeasureIndent(text string) (indent int, blank bool) {
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return indent, false
		}
		indent++
	}
	return indent, true
}
