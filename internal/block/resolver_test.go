package block

import (
	"errors"
	"fmt"
	"testing"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		scanned  Range
		previous Selection
		want     Range
	}{
		{Range{4, 6}, Lines(0, 3), Range{0, 6}},
		{Range{4, 6}, Cursor(5), Range{4, 6}},
		{Range{2, 6}, Lines(3, 4), Range{2, 6}},
		{Range{0, 0}, Cursor(0), Range{0, 0}},
	}
	for _, tt := range tests {
		if got := Compose(tt.scanned, tt.previous); got != tt.want {
			t.Errorf("Compose(%s, %s) = %s, want %s", tt.scanned, tt.previous, got, tt.want)
		}
	}
}

func TestResolverDefaults(t *testing.T) {
	r := NewResolver()
	if r.Mode() != ModeBlock {
		t.Errorf("expected block mode, got %s", r.Mode())
	}
	if r.Classifier() == nil {
		t.Error("expected a classifier")
	}
}

func TestResolveComposesSelection(t *testing.T) {
	buf := newTextBuffer(funcsSource)

	for _, mode := range []Mode{ModeBlock, ModeForward} {
		r := NewResolver(WithMode(mode))
		got, err := r.Resolve(buf, Lines(0, 3))
		if err != nil {
			t.Fatalf("%s: Resolve failed: %v", mode, err)
		}
		if want := (Range{0, 4}); got != want {
			t.Errorf("%s: got %s, want %s", mode, got, want)
		}
	}
}

func TestResolveInvertedIsNoExpansion(t *testing.T) {
	buf := newTextBuffer("def foo():\n    x = 1\n\n\ny = 2")
	r := NewResolver(WithMode(ModeForward))

	_, err := r.Resolve(buf, Lines(1, 1))
	if !errors.Is(err, ErrNoExpansion) {
		t.Fatalf("expected ErrNoExpansion, got %v", err)
	}
	if !IsNoSelection(err) {
		t.Error("ErrNoExpansion should be a no-selection signal")
	}
}

func TestResolveLastLineSelection(t *testing.T) {
	buf := newTextBuffer(funcsSource)
	for _, mode := range []Mode{ModeBlock, ModeForward} {
		_, err := NewResolver(WithMode(mode)).Resolve(buf, Lines(4, 4))
		if !errors.Is(err, ErrNoMoreLines) {
			t.Errorf("%s: expected ErrNoMoreLines, got %v", mode, err)
		}
	}
}

func TestResolveWithKeywords(t *testing.T) {
	buf := newTextBuffer("match x:\n    case 1:\n\n        pass")
	r := NewResolver(WithKeywords("match", "case"))
	got, err := r.Resolve(buf, Cursor(0))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := (Range{0, 3}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

var propertySources = []string{funcsSource, statementsSource, classSource, branchSource}

func TestResolveCursorNeverInverted(t *testing.T) {
	for _, mode := range []Mode{ModeBlock, ModeForward} {
		r := NewResolver(WithMode(mode))
		for si, src := range propertySources {
			buf := newTextBuffer(src)
			for n := 0; n < buf.LineCount(); n++ {
				got, err := r.Resolve(buf, Cursor(n))
				if err != nil {
					if !IsNoSelection(err) {
						t.Errorf("%s source %d line %d: unexpected error %v", mode, si, n, err)
					}
					continue
				}
				if got.IsInverted() {
					t.Errorf("%s source %d line %d: inverted range %s", mode, si, n, got)
				}
				if got.EndLine >= buf.LineCount() {
					t.Errorf("%s source %d line %d: range %s past end", mode, si, n, got)
				}
			}
		}
	}
}

func TestResolveRepeatedExtendsMonotonically(t *testing.T) {
	for _, mode := range []Mode{ModeBlock, ModeForward} {
		r := NewResolver(WithMode(mode))
		for si, src := range propertySources {
			t.Run(fmt.Sprintf("%s/%d", mode, si), func(t *testing.T) {
				buf := newTextBuffer(src)
				got, err := r.Resolve(buf, Cursor(0))
				if err != nil {
					t.Fatalf("first Resolve failed: %v", err)
				}
				start, end := got.StartLine, got.EndLine

				for i := 0; i < buf.LineCount(); i++ {
					next, err := r.Resolve(buf, got.Selection())
					if err != nil {
						if !IsNoSelection(err) {
							t.Fatalf("unexpected error: %v", err)
						}
						break
					}
					if next.EndLine < end {
						t.Fatalf("end retracted from %d to %d", end, next.EndLine)
					}
					if next.StartLine > start {
						t.Fatalf("start retracted from %d to %d", start, next.StartLine)
					}
					got, start, end = next, next.StartLine, next.EndLine
				}

				if end != buf.LineCount()-1 {
					t.Errorf("expected selection to reach line %d, stopped at %d", buf.LineCount()-1, end)
				}
			})
		}
	}
}

func TestResolveRejectsInvalidSelection(t *testing.T) {
	buf := newTextBuffer(funcsSource)
	bad := []Selection{
		{StartLine: -3, EndLine: 0, ActiveLine: 0},
		Cursor(-1),
		{StartLine: 3, EndLine: 1, ActiveLine: 1},
		{StartLine: 0, EndLine: 2, ActiveLine: 4},
	}

	for _, mode := range []Mode{ModeBlock, ModeForward} {
		r := NewResolver(WithMode(mode))
		for _, sel := range bad {
			_, err := r.Resolve(buf, sel)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("%s: Resolve(%+v) error = %v, want ErrInvalidSelection", mode, sel, err)
			}
			if IsNoSelection(err) {
				t.Errorf("%s: invalid selection reported as no-selection", mode)
			}
		}
	}
}

func TestResolvePastEndIsNoMoreLines(t *testing.T) {
	buf := newTextBuffer(funcsSource)
	for _, mode := range []Mode{ModeBlock, ModeForward} {
		_, err := NewResolver(WithMode(mode)).Resolve(buf, Cursor(40))
		if !errors.Is(err, ErrNoMoreLines) {
			t.Errorf("%s: Resolve(Cursor(40)) error = %v, want ErrNoMoreLines", mode, err)
		}
	}
}

func TestResolveUnicodeWhitespace(t *testing.T) {
	// A form-feed line separates statement groups like an empty line.
	buf := newTextBuffer("x = 1\n\f\ny = 2")
	for _, mode := range []Mode{ModeBlock, ModeForward} {
		got, err := NewResolver(WithMode(mode)).Resolve(buf, Cursor(0))
		if err != nil {
			t.Fatalf("%s: Resolve failed: %v", mode, err)
		}
		if want := (Range{0, 0}); got != want {
			t.Errorf("%s: got %s, want %s", mode, got, want)
		}
	}

	// A no-break space indents like any other whitespace character.
	buf = newTextBuffer("def f():\n\u00a0x = 1\ny = 2")
	got, err := NewResolver().Resolve(buf, Cursor(1))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := (Range{1, 1}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"block", ModeBlock, true},
		{"", ModeBlock, true},
		{"block-aware", ModeBlock, true},
		{"forward", ModeForward, true},
		{"forward-scan", ModeForward, true},
		{"sideways", ModeBlock, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseMode(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
