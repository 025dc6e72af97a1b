package buffer

import "github.com/dshills/pyselect/internal/block"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified. Snapshot implements block.Buffer.
type Snapshot struct {
	lines      []line
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

var _ block.Buffer = (*Snapshot)(nil)

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return joinLines(s.lines, s.lineEnding)
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineAt returns a view of line n. It panics if n is out of range, like
// slice indexing; block resolution only asks for lines below LineCount.
func (s *Snapshot) LineAt(n int) block.Line {
	return s.Line(n)
}

// Line returns the concrete view of line n.
func (s *Snapshot) Line(n int) LineView {
	return LineView{l: s.lines[n], number: n}
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines return an empty string.
func (s *Snapshot) LineText(n int) string {
	if n < 0 || n >= len(s.lines) {
		return ""
	}
	return s.lines[n].text
}

// LineLen returns the length of a specific line in bytes (without newline).
func (s *Snapshot) LineLen(n int) int {
	return len(s.LineText(n))
}

// TextLines returns the text of lines start through end (inclusive),
// clamped to the snapshot.
func (s *Snapshot) TextLines(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end >= len(s.lines) {
		end = len(s.lines) - 1
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, s.lines[i].text)
	}
	return out
}

// RangeText returns the text covered by an inclusive line range, joined with
// the snapshot's line ending.
func (s *Snapshot) RangeText(r block.Range) string {
	lines := s.TextLines(r.StartLine, r.EndLine)
	out := make([]line, len(lines))
	for i, t := range lines {
		out[i] = line{text: t}
	}
	return joinLines(out, s.lineEnding)
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot holds a single empty line.
func (s *Snapshot) IsEmpty() bool {
	return len(s.lines) == 1 && s.lines[0].text == ""
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}
