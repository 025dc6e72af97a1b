package block

// ScanBlock finds the block at the anchor line using the anchor's kind.
//
// The anchor is the cursor line for an empty selection, or the first
// non-blank line after a line selection. An opener anchor (block keyword,
// def/class header, or decorator) selects its indented body and tolerates
// blank lines inside it. A plain anchor selects the statement group around
// it: lines above and below it up to the nearest blank line.
//
// Both directions stop at a line that is less indented than the anchor, or
// at a sibling opener, definition or decorator at the anchor's indentation.
func ScanBlock(buf Buffer, sel Selection, c *Classifier) (Range, error) {
	if err := sel.validate(); err != nil {
		return Range{}, err
	}
	if c == nil {
		c = defaultClassifier
	}

	anchor, err := findAnchor(buf, sel)
	if err != nil {
		return Range{}, err
	}

	s := scanner{buf: buf, c: c, indent: anchor.Indent()}
	start, end := anchor.Number(), anchor.Number()

	kind := c.Classify(anchor.Text())
	if kind == KindDecorator {
		end = s.definitionHeader(end)
		kind = c.ClassifyLine(buf.LineAt(end))
	}

	if kind.IsOpener() || kind == KindDecorator {
		end = s.forward(end, true)
		return Range{StartLine: start, EndLine: end}, nil
	}

	end = s.forward(end, false)
	start = s.backward(start)
	return Range{StartLine: start, EndLine: end}, nil
}

// findAnchor resolves the line block-aware scanning starts from.
func findAnchor(buf Buffer, sel Selection) (Line, error) {
	count := buf.LineCount()

	if sel.Empty {
		if sel.ActiveLine < 0 || sel.ActiveLine >= count {
			return nil, ErrNoMoreLines
		}
		line := buf.LineAt(sel.ActiveLine)
		if line.IsBlank() {
			return nil, ErrBlankAnchor
		}
		return line, nil
	}

	for n := sel.EndLine + 1; n < count; n++ {
		if line := buf.LineAt(n); !line.IsBlank() {
			return line, nil
		}
	}
	return nil, ErrNoMoreLines
}

// scanner holds the state shared by the directional scans.
type scanner struct {
	buf    Buffer
	c      *Classifier
	indent int
}

// admits reports whether a non-blank line belongs to the current block.
func (s *scanner) admits(l Line) bool {
	indent := l.Indent()
	if indent < s.indent {
		return false
	}
	if indent == s.indent && s.c.Classify(l.Text()).IsBoundary() {
		return false
	}
	return true
}

// forward extends end downward. Blank lines are skipped when skipBlank is
// set and end the scan otherwise.
func (s *scanner) forward(end int, skipBlank bool) int {
	count := s.buf.LineCount()
	for i := end + 1; i < count; i++ {
		line := s.buf.LineAt(i)
		if line.IsBlank() {
			if skipBlank {
				continue
			}
			break
		}
		if !s.admits(line) {
			break
		}
		end = i
	}
	return end
}

// backward extends start upward. Blank lines end the scan.
func (s *scanner) backward(start int) int {
	for i := start - 1; i >= 0; i-- {
		line := s.buf.LineAt(i)
		if line.IsBlank() || !s.admits(line) {
			break
		}
		start = i
	}
	return start
}

// definitionHeader walks from a decorator over the decorators stacked under
// it at the same indentation and returns the line of the header they
// decorate. Without such a header it returns the last decorator line.
func (s *scanner) definitionHeader(from int) int {
	count := s.buf.LineCount()
	last := from
	for i := from + 1; i < count; i++ {
		line := s.buf.LineAt(i)
		if line.IsBlank() {
			continue
		}
		if line.Indent() != s.indent {
			return last
		}
		switch s.c.Classify(line.Text()) {
		case KindDecorator:
			last = i
		case KindClassOrFunction, KindBlockOpener:
			return i
		default:
			return last
		}
	}
	return last
}
