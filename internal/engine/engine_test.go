package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

const sample = "def f():\n    a = 1\n    b = 2\n\ndef g():"

func TestNew(t *testing.T) {
	e := New()
	if e.Text() != "" {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	if e.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", e.LineCount())
	}
}

func TestNewWithOptions(t *testing.T) {
	e := New(
		WithContent(sample),
		WithPath("pkg/mod.py"),
		WithLanguageID("python"),
		WithTabWidth(8),
	)

	if e.LineCount() != 5 {
		t.Errorf("expected 5 lines, got %d", e.LineCount())
	}
	if e.Path() != "pkg/mod.py" || e.LanguageID() != "python" {
		t.Errorf("unexpected path/language %q %q", e.Path(), e.LanguageID())
	}
	if e.TabWidth() != 8 {
		t.Errorf("expected tab width 8, got %d", e.TabWidth())
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("a\r\nb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.LineText(1) != "b" {
		t.Errorf("expected b, got %q", e.LineText(1))
	}
	if e.LineEnding() != buffer.LineEndingCRLF {
		t.Errorf("expected CRLF, got %v", e.LineEnding())
	}
}

func TestWithLineEndingOverridesDetection(t *testing.T) {
	e := New(WithContent("a\r\nb"), WithLineEnding(buffer.LineEndingLF))
	if e.Text() != "a\nb" {
		t.Errorf("expected LF text, got %q", e.Text())
	}
}

func TestSetSelectionClamps(t *testing.T) {
	e := New(WithContent(sample))
	e.SetSelection(cursor.NewCursorSelection(Point{Line: 40}))

	if got := e.Selection().Head.Line; got != 4 {
		t.Errorf("expected clamped line 4, got %d", got)
	}
	if e.CanShrink() {
		t.Error("SetSelection should not record history")
	}
}

func TestExpandAndShrink(t *testing.T) {
	e := New(WithContent(sample))
	start := cursor.NewCursorSelection(Point{Line: 0, Column: 2})
	e.SetSelection(start)

	snap, sel := e.State()
	r, err := block.NewResolver().Resolve(snap, sel.ToBlock())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	e.ExpandSelection(cursor.LineSelection(r, snap.LineLen(r.EndLine)))

	got := e.Selection()
	if got.Start().Line != 0 || got.End().Line != 2 {
		t.Fatalf("expanded to %v, want lines 0-2", got)
	}

	if err := e.ShrinkSelection(); err != nil {
		t.Fatalf("ShrinkSelection: %v", err)
	}
	if e.Selection() != start {
		t.Errorf("shrink restored %v, want %v", e.Selection(), start)
	}

	if err := e.RegrowSelection(); err != nil {
		t.Fatalf("RegrowSelection: %v", err)
	}
	if e.Selection() != got {
		t.Errorf("regrow restored %v, want %v", e.Selection(), got)
	}
}

func TestShrinkWithoutHistory(t *testing.T) {
	e := New(WithContent(sample))

	if err := e.ShrinkSelection(); !errors.Is(err, ErrNothingToShrink) {
		t.Errorf("expected ErrNothingToShrink, got %v", err)
	}
	if err := e.RegrowSelection(); !errors.Is(err, ErrNothingToRegrow) {
		t.Errorf("expected ErrNothingToRegrow, got %v", err)
	}
}

func TestMaxHistoryEntriesBoundsShrink(t *testing.T) {
	e := New(WithContent(sample), WithMaxHistoryEntries(1))
	e.ExpandSelection(cursor.NewSelection(Point{Line: 0}, Point{Line: 2, Column: 9}))
	e.ExpandSelection(cursor.NewSelection(Point{Line: 0}, Point{Line: 4, Column: 8}))

	if err := e.ShrinkSelection(); err != nil {
		t.Fatalf("first shrink: %v", err)
	}
	if got := e.Selection().Head.Line; got != 2 {
		t.Errorf("after shrink head line = %d, want 2", got)
	}
	if err := e.ShrinkSelection(); !errors.Is(err, ErrNothingToShrink) {
		t.Errorf("second shrink = %v, want ErrNothingToShrink", err)
	}
}

func TestSetContentResets(t *testing.T) {
	e := New(WithContent(sample))
	e.ExpandSelection(cursor.NewSelection(Point{Line: 0}, Point{Line: 2, Column: 9}))
	rev := e.RevisionID()

	e.SetContent("y = 1")

	if e.RevisionID() == rev {
		t.Error("revision should change")
	}
	if !e.Selection().IsEmpty() || e.CanShrink() {
		t.Error("selection and history should reset")
	}
}

func TestConcurrentState(t *testing.T) {
	e := New(WithContent(sample))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(line int) {
			defer wg.Done()
			e.ExpandSelection(cursor.NewCursorSelection(Point{Line: line % 5}))
		}(i)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, sel := e.State()
			if sel.Head.Line >= snap.LineCount() {
				t.Errorf("selection line %d outside snapshot", sel.Head.Line)
			}
		}()
	}
	wg.Wait()
}
