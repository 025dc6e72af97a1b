package buffer

import "github.com/dshills/pyselect/internal/block"

// line caches the indentation facts block selection asks for.
type line struct {
	text   string
	indent int
	blank  bool
}

func newLine(text string) line {
	indent, blank := block.MeasureIndent(text)
	return line{text: text, indent: indent, blank: blank}
}

// LineView is a read-only view of one snapshot line. It implements
// block.Line.
type LineView struct {
	l      line
	number int
}

// Text returns the line text without its line ending.
func (v LineView) Text() string { return v.l.text }

// IsBlank reports whether the line holds only spaces and tabs.
func (v LineView) IsBlank() bool { return v.l.blank }

// Indent returns the number of leading space and tab characters.
func (v LineView) Indent() int { return v.l.indent }

// Number returns the 0-indexed line number.
func (v LineView) Number() int { return v.number }
