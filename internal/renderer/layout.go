package renderer

import "github.com/rivo/uniseg"

// glyph is one grapheme cluster of a laid out line.
type glyph struct {
	runes []rune
	// offset is the byte offset of the cluster in the line.
	offset int
	// col is the display column the cluster starts at.
	col int
	// width is the number of cells it occupies.
	width int
}

// layoutLine splits text into grapheme clusters and assigns display
// columns. Tabs advance to the next multiple of tabWidth and are drawn as
// spaces.
func layoutLine(text string, tabWidth int) []glyph {
	if tabWidth < 1 {
		tabWidth = 1
	}
	var (
		out []glyph
		col int
	)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		cluster := g.Str()
		gl := glyph{runes: g.Runes(), offset: from, col: col, width: g.Width()}
		switch {
		case cluster == "\t":
			gl.runes = []rune{' '}
			gl.width = tabWidth - col%tabWidth
		case gl.width == 0:
			// Control characters are shown as a replacement.
			gl.runes = []rune{'�'}
			gl.width = 1
		}
		out = append(out, gl)
		col += gl.width
	}
	return out
}

// columnOf returns the display column of byte offset within text.
func columnOf(text string, offset, tabWidth int) int {
	col := 0
	for _, gl := range layoutLine(text, tabWidth) {
		if gl.offset >= offset {
			return gl.col
		}
		col = gl.col + gl.width
	}
	return col
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var (
		out   []byte
		used  int
		state = -1
	)
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out)
}
