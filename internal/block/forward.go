package block

// ScanForward finds the block that follows sel by scanning downward only.
//
// For a cursor the scan starts on the cursor line. For a line selection it
// starts on the first non-blank line after the selection. Lines are added
// while they stay at or deeper than the lowest of the selection's and the
// start line's indentation; a sibling opener or decorator at that level ends
// the block. Blank lines end the block unless the selection's first line is
// an opener.
//
// When the content after a line selection is less indented than the
// selection itself, the returned range is inverted: EndLine lies before
// StartLine. Resolver turns that into ErrNoExpansion.
func ScanForward(buf Buffer, sel Selection, c *Classifier) (Range, error) {
	if err := sel.validate(); err != nil {
		return Range{}, err
	}
	if c == nil {
		c = defaultClassifier
	}
	count := buf.LineCount()

	firstLineNumber := sel.ActiveLine
	startLineNumber := sel.ActiveLine
	skippedEmptyLines := 0

	if !sel.Empty {
		firstLineNumber = sel.StartLine
		startLineNumber = sel.EndLine + 1
		if startLineNumber >= count {
			return Range{}, ErrNoMoreLines
		}
		for buf.LineAt(startLineNumber).IsBlank() {
			skippedEmptyLines++
			startLineNumber++
			if startLineNumber >= count {
				return Range{}, ErrNoMoreLines
			}
		}
	}
	if startLineNumber < 0 || startLineNumber >= count {
		return Range{}, ErrNoMoreLines
	}

	firstLine := buf.LineAt(firstLineNumber)
	startLine := buf.LineAt(startLineNumber)

	firstIndentation := firstLine.Indent()
	startIndentation := firstIndentation
	if !startLine.IsBlank() {
		startIndentation = startLine.Indent()
	}

	end := startLineNumber
	if startIndentation < firstIndentation {
		return Range{StartLine: startLineNumber, EndLine: end - 1 - skippedEmptyLines}, nil
	}

	lowestIndentation := min(startIndentation, firstIndentation)
	keywordFirst := c.ClassifyLine(firstLine).IsOpener()

	for i := startLineNumber + 1; i < count; i++ {
		line := buf.LineAt(i)
		if line.IsBlank() {
			if keywordFirst {
				continue
			}
			break
		}
		indent := line.Indent()
		if indent < lowestIndentation {
			break
		}
		if indent == lowestIndentation && c.Classify(line.Text()).IsBoundary() {
			break
		}
		end = i
	}

	return Range{StartLine: startLineNumber, EndLine: end}, nil
}
