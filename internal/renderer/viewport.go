package renderer

import "sync"

// Viewport is the window of buffer lines and display columns on screen.
type Viewport struct {
	mu sync.RWMutex

	topLine    int
	leftColumn int

	width  int
	height int

	// scrollOff is the number of lines kept visible above and below a
	// revealed line, when the viewport is tall enough.
	scrollOff int

	lineCount int
}

// NewViewport creates a viewport with the given size in cells.
// Sizes are clamped to at least 1.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: max(width, 1), height: max(height, 1)}
}

// Resize changes the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.clamp()
}

// Size returns the viewport width and height.
func (v *Viewport) Size() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// SetScrollOff sets the context kept around revealed lines.
func (v *Viewport) SetScrollOff(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollOff = max(n, 0)
}

// SetLineCount sets the number of lines in the document.
func (v *Viewport) SetLineCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineCount = max(n, 0)
	v.clamp()
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// LeftColumn returns the first visible display column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// VisibleLineRange returns the first and last lines the viewport covers.
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.topLine + v.height - 1
}

// IsLineVisible reports whether line is inside the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && line < v.topLine+v.height
}

// margin is the scroll-off usable at the current height.
func (v *Viewport) margin() int {
	return min(v.scrollOff, (v.height-1)/2)
}

// Reveal scrolls minimally so that line and display column col are visible
// with the scroll-off margin around them. It reports whether the viewport
// moved.
func (v *Viewport) Reveal(line, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	top, left := v.topLine, v.leftColumn
	m := v.margin()

	if line < v.topLine+m {
		v.topLine = max(line-m, 0)
	} else if line > v.topLine+v.height-1-m {
		v.topLine = line - v.height + 1 + m
	}

	if col < v.leftColumn {
		v.leftColumn = col
	} else if col >= v.leftColumn+v.width {
		v.leftColumn = col - v.width + 1
	}

	v.clamp()
	return top != v.topLine || left != v.leftColumn
}

// CenterOn scrolls so that line is in the middle of the viewport.
func (v *Viewport) CenterOn(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = max(line-v.height/2, 0)
	v.clamp()
}

// ScrollBy moves the viewport by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = max(v.topLine+delta, 0)
	v.clamp()
}

// clamp keeps the top line inside the document. The caller holds mu.
func (v *Viewport) clamp() {
	if v.lineCount > 0 && v.topLine > v.lineCount-1 {
		v.topLine = v.lineCount - 1
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
	if v.leftColumn < 0 {
		v.leftColumn = 0
	}
}
