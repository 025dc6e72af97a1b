package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/pyselect/internal/block"
)

// Point is a 0-based line and byte column.
type Point struct {
	Line   int
	Column int
}

// LineStart returns column 0 of line.
func LineStart(line int) Point {
	return Point{Line: line}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points by line, then column.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line != other.Line:
		return cmpInt(p.Line, other.Line)
	default:
		return cmpInt(p.Column, other.Column)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Before reports whether p sorts before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After reports whether p sorts after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// PointRange is the half-open span [Start, End).
type PointRange struct {
	Start Point
	End   Point
}

// NewPointRange returns the range from start to end.
func NewPointRange(start, end Point) PointRange {
	return PointRange{Start: start, End: end}
}

func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty reports whether the range covers nothing.
func (r PointRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether Start does not sort after End.
func (r PointRange) IsValid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether p lies in the range.
func (r PointRange) Contains(p Point) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// Lines returns the lines the range touches, as block resolution sees them.
func (r PointRange) Lines() block.Range {
	return block.Range{StartLine: r.Start.Line, EndLine: r.End.Line}
}

// RevisionID identifies one state of a buffer's text.
type RevisionID uint64

var revisionCounter atomic.Uint64

// NewRevisionID returns a process-unique revision.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
