package block

import (
	"errors"
	"testing"
)

func TestScanBlock(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sel  Selection
		want Range
	}{
		{"function with interior blank", funcsSource, Cursor(0), Range{0, 3}},
		{"statement before blank", funcsSource, Cursor(1), Range{1, 1}},
		{"statement after blank", funcsSource, Cursor(3), Range{3, 3}},
		{"last line opener", funcsSource, Cursor(4), Range{4, 4}},
		{"anchor after selection", funcsSource, Lines(0, 3), Range{4, 4}},
		{"nested continuation line", statementsSource, Cursor(5), Range{5, 5}},
		{"statement group both ways", statementsSource, Cursor(4), Range{3, 7}},
		{"first group", statementsSource, Cursor(0), Range{0, 1}},
		{"anchor skips blank after selection", statementsSource, Lines(0, 1), Range{3, 7}},
		{"stacked decorators", classSource, Cursor(0), Range{0, 7}},
		{"class header", classSource, Cursor(2), Range{2, 7}},
		{"nested decorator", classSource, Cursor(5), Range{5, 7}},
		{"class attribute", classSource, Cursor(3), Range{3, 3}},
		{"trailing function", classSource, Cursor(9), Range{9, 10}},
		{"if stops at else", branchSource, Cursor(0), Range{0, 1}},
		{"else branch", branchSource, Lines(0, 1), Range{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScanBlock(newTextBuffer(tt.src), tt.sel, nil)
			if err != nil {
				t.Fatalf("ScanBlock(%s) failed: %v", tt.sel, err)
			}
			if got != tt.want {
				t.Errorf("ScanBlock(%s) = %s, want %s", tt.sel, got, tt.want)
			}
		})
	}
}

func TestScanBlockErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sel  Selection
		want error
	}{
		{"blank cursor line", funcsSource, Cursor(2), ErrBlankAnchor},
		{"selection reaches end", funcsSource, Lines(0, 4), ErrNoMoreLines},
		{"only blanks after selection", "x = 1\n\n   \n", Lines(0, 0), ErrNoMoreLines},
		{"cursor past end", funcsSource, Cursor(9), ErrNoMoreLines},
		{"empty buffer", "", Cursor(0), ErrBlankAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanBlock(newTextBuffer(tt.src), tt.sel, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScanBlockPlainFollowedByBlank(t *testing.T) {
	buf := newTextBuffer("a = 1\n\nb = 2\nc = 3")
	got, err := ScanBlock(buf, Cursor(0), nil)
	if err != nil {
		t.Fatalf("ScanBlock failed: %v", err)
	}
	if got.EndLine != 0 {
		t.Errorf("expected end on anchor line, got %s", got)
	}
}

func TestScanBlockDeeperLinesAlwaysIncluded(t *testing.T) {
	src := `for x in xs:
    if x:
        continue
    @weird
    else:
        pass
for y in ys:
    pass`
	got, err := ScanBlock(newTextBuffer(src), Cursor(0), nil)
	if err != nil {
		t.Fatalf("ScanBlock failed: %v", err)
	}
	if want := (Range{0, 5}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestScanBlockSiblingDecoratorStops(t *testing.T) {
	src := `def a():
    pass
@cache
def b():
    pass`
	got, err := ScanBlock(newTextBuffer(src), Cursor(0), nil)
	if err != nil {
		t.Fatalf("ScanBlock failed: %v", err)
	}
	if want := (Range{0, 1}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestScanBlockCustomClassifier(t *testing.T) {
	src := `match cmd:
    case 1:
        go()

    case 2:
        stop()
after()`
	c := NewClassifier(append([]string{"match", "case"}, DefaultKeywords...)...)
	got, err := ScanBlock(newTextBuffer(src), Cursor(0), c)
	if err != nil {
		t.Fatalf("ScanBlock failed: %v", err)
	}
	// A plain line at the opener's indentation does not end the block.
	if want := (Range{0, 6}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	// Without the keywords the match line is a plain statement and the
	// blank line ends it.
	got, err = ScanBlock(newTextBuffer(src), Cursor(0), NewClassifier())
	if err != nil {
		t.Fatalf("ScanBlock failed: %v", err)
	}
	if want := (Range{0, 2}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
