package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Default theme colours.
const (
	DefaultSelectionColor = "#264f78"
	DefaultGutterColor    = "#858585"
)

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// Theme holds the styles used for each part of the frame.
type Theme struct {
	Text         tcell.Style
	Selection    tcell.Style
	Gutter       tcell.Style
	GutterActive tcell.Style
	Filler       tcell.Style
	Status       tcell.Style
}

// DefaultTheme returns the theme built from the default colours.
func DefaultTheme() Theme {
	t, _ := NewTheme(DefaultSelectionColor, DefaultGutterColor)
	return t
}

// NewTheme builds a theme from hex colours for the selection background and
// the line numbers. Empty strings use the defaults. The remaining styles are
// derived from these two.
func NewTheme(selection, gutter string) (Theme, error) {
	if selection == "" {
		selection = DefaultSelectionColor
	}
	if gutter == "" {
		gutter = DefaultGutterColor
	}

	sel, err := colorful.Hex(selection)
	if err != nil {
		return Theme{}, fmt.Errorf("selection color %q: %w", selection, err)
	}
	gut, err := colorful.Hex(gutter)
	if err != nil {
		return Theme{}, fmt.Errorf("gutter color %q: %w", gutter, err)
	}

	return Theme{
		Text:         tcell.StyleDefault,
		Selection:    tcell.StyleDefault.Background(toTcell(sel)),
		Gutter:       tcell.StyleDefault.Foreground(toTcell(gut)),
		GutterActive: tcell.StyleDefault.Foreground(toTcell(gut.BlendLab(white, 0.6))).Bold(true),
		Filler:       tcell.StyleDefault.Foreground(toTcell(gut.BlendLab(black, 0.4))),
		Status: tcell.StyleDefault.
			Background(toTcell(sel.BlendLab(black, 0.45))).
			Foreground(toTcell(white)),
	}, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
