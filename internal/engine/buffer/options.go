package buffer

import "strings"

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding fixes the ending written back by Text. It wins over
// detection when passed to NewBufferFromString.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) { b.lineEnding = le }
}

// WithTabWidth sets the tab width. Non-positive widths are ignored.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// DetectLineEnding picks the most frequent ending in text. Ties prefer
// CRLF, then CR. Text without line breaks is LF.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	cr := strings.Count(text, "\r") - crlf
	lf := strings.Count(text, "\n") - crlf

	switch {
	case crlf > 0 && crlf >= lf && crlf >= cr:
		return LineEndingCRLF
	case cr > 0 && cr >= lf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// WithDetectedLineEnding applies the ending DetectLineEnding finds in text.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}
