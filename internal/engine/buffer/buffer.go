package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds a document as a slice of lines.
// Lines are stored without their line endings; the ending style is kept
// separately and used when the text is joined back together.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []line
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer with a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []line{newLine("")},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The line ending style is detected from the content unless an option
// sets it explicitly.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(append([]Option{WithDetectedLineEnding(s)}, opts...)...)
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
// The input is decoded as UTF-8, or as UTF-16 when it starts with a UTF-16
// byte order mark. A UTF-8 byte order mark is dropped.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first so CRLF sequences are never split across
	// read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(text, opts...), nil
}

// splitLines splits text on any line ending style. A trailing line ending
// yields a final empty line, as editors display it.
func splitLines(s string) []line {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	parts := strings.Split(s, "\n")
	lines := make([]line, len(parts))
	for i, p := range parts {
		lines[i] = newLine(p)
	}
	return lines
}

// Read Operations

// Text returns the full buffer content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return joinLines(b.lines, b.lineEnding)
}

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines return an empty string.
func (b *Buffer) LineText(n int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n].text
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(n int) int {
	return len(b.LineText(n))
}

// LineEndPoint returns the position just past the last character of line n.
func (b *Buffer) LineEndPoint(n int) Point {
	return Point{Line: n, Column: b.LineLen(n)}
}

// Write Operations

// SetText replaces the whole content of the buffer.
func (b *Buffer) SetText(s string) {
	lines := splitLines(s)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = lines
	b.revisionID = NewRevisionID()
}

// ReplaceLines replaces lines start through end (inclusive) with the given
// text, which may itself span several lines.
func (b *Buffer) ReplaceLines(start, end int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || end < start || end >= len(b.lines) {
		return ErrRangeInvalid
	}

	repl := splitLines(text)
	lines := make([]line, 0, len(b.lines)-(end-start+1)+len(repl))
	lines = append(lines, b.lines[:start]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[end+1:]...)

	b.lines = lines
	b.revisionID = NewRevisionID()
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0].text == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		lines:      b.lines, // never mutated in place, safe to share
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

func joinLines(lines []line, le LineEnding) string {
	var sb strings.Builder
	sep := le.Sequence()
	for i, l := range lines {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(l.text)
	}
	return sb.String()
}
