package renderer

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNewTheme(t *testing.T) {
	theme, err := NewTheme("#ff0000", "")
	if err != nil {
		t.Fatalf("NewTheme() error = %v", err)
	}
	_, bg, _ := theme.Selection.Decompose()
	if bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("selection background = %v, want red", bg)
	}
	fg, _, _ := theme.Gutter.Decompose()
	if fg != tcell.NewRGBColor(0x85, 0x85, 0x85) {
		t.Errorf("gutter foreground = %v, want default gutter colour", fg)
	}
	if theme.GutterActive == theme.Gutter {
		t.Error("active gutter should differ from gutter")
	}
}

func TestNewThemeInvalid(t *testing.T) {
	if _, err := NewTheme("red", ""); err == nil {
		t.Error("expected error for a non-hex selection colour")
	}
	if _, err := NewTheme("", "#12"); err == nil {
		t.Error("expected error for a short gutter colour")
	}
}

func TestDefaultTheme(t *testing.T) {
	if DefaultTheme().Selection == tcell.StyleDefault {
		t.Error("default selection style should set a background")
	}
}
