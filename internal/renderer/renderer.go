package renderer

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

// DefaultTabWidth is the display width of a tab.
const DefaultTabWidth = 4

// Document is what the renderer draws. *engine.Engine satisfies it.
type Document interface {
	State() (*buffer.Snapshot, cursor.Selection)
	Path() string
}

// Renderer draws a document on a tcell screen.
type Renderer struct {
	mu sync.Mutex

	screen   tcell.Screen
	theme    Theme
	view     *Viewport
	tabWidth int

	doc    Document
	mode   string
	status string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the colour theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithTabWidth sets the display width of tabs.
func WithTabWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.tabWidth = n
		}
	}
}

// WithScrollOff sets the number of context lines kept around a revealed
// line.
func WithScrollOff(n int) Option {
	return func(r *Renderer) {
		r.view.SetScrollOff(n)
	}
}

// New creates a renderer drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, opts ...Option) *Renderer {
	w, h := screen.Size()
	r := &Renderer{
		screen:   screen,
		theme:    DefaultTheme(),
		view:     NewViewport(w, h-1),
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetDocument sets the document to draw.
func (r *Renderer) SetDocument(doc Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	r.layout()
}

// SetMode sets the resolution mode shown in the status line.
func (r *Renderer) SetMode(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
}

// SetStatus sets the message shown in the status line.
func (r *Renderer) SetStatus(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = msg
}

// Status returns the current status message.
func (r *Renderer) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Viewport returns the renderer's viewport.
func (r *Renderer) Viewport() *Viewport {
	return r.view
}

// ScrollTo scrolls so that the given line and byte column are visible.
func (r *Renderer) ScrollTo(line, col int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout()
	r.view.Reveal(line, r.displayColumn(line, col))
}

// CenterOnLine centers the view on a line.
func (r *Renderer) CenterOnLine(line int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout()
	r.view.CenterOn(line)
}

// IsLineVisible reports whether a line is currently on screen.
func (r *Renderer) IsLineVisible(line int) bool {
	return r.view.IsLineVisible(line)
}

// VisibleLineRange returns the first and last visible lines.
func (r *Renderer) VisibleLineRange() (start, end int) {
	return r.view.VisibleLineRange()
}

// ScrollBy moves the view by delta lines.
func (r *Renderer) ScrollBy(delta int) {
	r.view.ScrollBy(delta)
}

// layout sizes the viewport for the current screen and document.
// The caller holds mu.
func (r *Renderer) layout() int {
	w, h := r.screen.Size()
	count := 1
	if r.doc != nil {
		snap, _ := r.doc.State()
		count = snap.LineCount()
	}
	gw := gutterWidth(count)
	r.view.SetLineCount(count)
	r.view.Resize(w-gw, h-1)
	return gw
}

func (r *Renderer) displayColumn(line, col int) int {
	if r.doc == nil {
		return col
	}
	snap, _ := r.doc.State()
	if line < 0 || line >= snap.LineCount() {
		return 0
	}
	return columnOf(snap.LineText(line), col, r.tabWidth)
}

// gutterWidth is the width of the line number column plus its separator.
func gutterWidth(lineCount int) int {
	return len(strconv.Itoa(max(lineCount, 1))) + 2
}

// Render draws a full frame and shows it.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	w, h := r.screen.Size()
	if r.doc == nil || h < 1 {
		r.screen.Show()
		return
	}

	gw := r.layout()
	snap, sel := r.doc.State()
	top, left := r.view.TopLine(), r.view.LeftColumn()

	for row := 0; row < h-1; row++ {
		line := top + row
		if line >= snap.LineCount() {
			r.drawString(0, row, "~", r.theme.Filler, gw)
			continue
		}
		gutter := r.theme.Gutter
		if lineSelected(sel, line) {
			gutter = r.theme.GutterActive
		}
		r.drawString(0, row, fmt.Sprintf("%*d ", gw-1, line+1), gutter, gw)
		r.drawLine(gw, row, w-gw, snap.LineText(line), line, sel, left)
	}

	r.drawStatus(h-1, w, sel)

	head := sel.Head
	row := head.Line - top
	col := gw + columnOf(snap.LineText(head.Line), head.Column, r.tabWidth) - left
	if row >= 0 && row < h-1 && col >= gw && col < w {
		r.screen.ShowCursor(col, row)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

// lineSelected reports whether any part of line is inside sel. A selection
// ending at column 0 does not select its last line.
func lineSelected(sel cursor.Selection, line int) bool {
	if sel.IsEmpty() {
		return false
	}
	start, end := sel.Start(), sel.End()
	if line < start.Line || line > end.Line {
		return false
	}
	return line < end.Line || end.Column > 0 || start.Line == end.Line
}

// drawLine draws one buffer line in a text area of the given width.
func (r *Renderer) drawLine(x0, y, width int, text string, line int, sel cursor.Selection, left int) {
	rng := sel.Range()
	end := 0
	for _, gl := range layoutLine(text, r.tabWidth) {
		x := gl.col - left
		end = gl.col + gl.width
		if x < 0 {
			continue
		}
		if x+gl.width > width {
			break
		}

		style := r.theme.Text
		if !sel.IsEmpty() && rng.Contains(buffer.Point{Line: line, Column: gl.offset}) {
			style = r.theme.Selection
		}
		r.screen.SetContent(x0+x, y, gl.runes[0], gl.runes[1:], style)
		if len(gl.runes) == 1 && gl.runes[0] == ' ' {
			for i := 1; i < gl.width; i++ {
				r.screen.SetContent(x0+x+i, y, ' ', nil, style)
			}
		}
	}

	// Show the selected line break as one highlighted cell.
	if !sel.IsEmpty() && line >= rng.Start.Line && line < rng.End.Line {
		if x := end - left; x >= 0 && x < width {
			r.screen.SetContent(x0+x, y, ' ', nil, r.theme.Selection)
		}
	}
}

// drawStatus draws the status line on row y.
func (r *Renderer) drawStatus(y, width int, sel cursor.Selection) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.theme.Status)
	}

	name := r.doc.Path()
	if name == "" {
		name = "[stdin]"
	}
	leftText := " " + name
	if r.mode != "" {
		leftText += "  [" + r.mode + "]"
	}
	rightText := selectionSummary(sel) + " "

	used := r.drawString(0, y, leftText, r.theme.Status, width)
	rw := uniseg.StringWidth(rightText)
	if r.status != "" {
		avail := width - used - rw - 2
		if avail > 0 {
			r.drawString(used+2, y, truncate(r.status, avail), r.theme.Status, avail)
		}
	}
	if width-rw > used {
		r.drawString(width-rw, y, rightText, r.theme.Status, rw)
	}
}

// selectionSummary describes sel with 1-based line numbers.
func selectionSummary(sel cursor.Selection) string {
	if sel.IsEmpty() {
		return fmt.Sprintf("Ln %d, Col %d", sel.Head.Line+1, sel.Head.Column+1)
	}
	start, end := sel.Start(), sel.End()
	last := end.Line
	if end.Column == 0 && last > start.Line {
		last--
	}
	n := last - start.Line + 1
	if n == 1 {
		return fmt.Sprintf("Ln %d (1 line)", start.Line+1)
	}
	return fmt.Sprintf("Ln %d-%d (%d lines)", start.Line+1, last+1, n)
}

// drawString draws s at (x, y) using at most maxWidth cells and returns the
// number of cells used.
func (r *Renderer) drawString(x, y int, s string, style tcell.Style, maxWidth int) int {
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > maxWidth {
			break
		}
		runes := g.Runes()
		r.screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}
