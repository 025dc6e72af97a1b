package block

// Compose merges a scanned range with the selection it was computed from.
// A non-empty previous selection that starts earlier keeps its start, so
// repeated invocations only ever grow the selection downward. The end is
// always the scanned end.
func Compose(scanned Range, previous Selection) Range {
	out := scanned
	if !previous.Empty && previous.StartLine < out.StartLine {
		out.StartLine = previous.StartLine
	}
	return out
}
