package project

import (
	"strings"

	"github.com/dshills/pyselect/internal/block"
)

// Block is one entry of a document outline.
type Block struct {
	// Range is the inclusive line range the resolver selects for the block.
	Range block.Range
	// Kind classifies the block's first line.
	Kind block.Kind
	// Header is the first line with surrounding whitespace removed.
	Header string
	// Depth is 1 for top-level blocks.
	Depth int
	// Children are the blocks of an opener's body, down to the outline's
	// maximum depth.
	Children []Block
}

// Outline splits buf into consecutive blocks.
//
// Starting at the first line, each unconsumed non-blank line at the current
// indentation is resolved as a cursor and the resulting range becomes one
// block. Bodies of openers are outlined the same way until maxDepth levels
// have been listed. A nil resolver uses the default block-aware resolver.
func Outline(buf block.Buffer, r *block.Resolver, maxDepth int) []Block {
	if r == nil {
		r = block.NewResolver()
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	o := outliner{buf: buf, r: r, maxDepth: maxDepth}
	return o.level(0, buf.LineCount()-1, 0, 1)
}

type outliner struct {
	buf      block.Buffer
	r        *block.Resolver
	maxDepth int
}

// level outlines lines [from, to] whose indentation equals indent.
func (o *outliner) level(from, to, indent, depth int) []Block {
	var blocks []Block
	for i := from; i <= to; {
		line := o.buf.LineAt(i)
		if line.IsBlank() || line.Indent() != indent {
			i++
			continue
		}

		rng, err := o.r.Resolve(o.buf, block.Cursor(i))
		if err != nil {
			i++
			continue
		}
		// Siblings must not overlap: a plain line may reach back into the
		// block before it, and nothing may leave the enclosing body.
		rng.StartLine = max(rng.StartLine, i)
		rng.EndLine = min(rng.EndLine, to)

		kind := o.r.Classifier().Classify(line.Text())
		b := Block{
			Range:  rng,
			Kind:   kind,
			Header: strings.TrimSpace(line.Text()),
			Depth:  depth,
		}
		if depth < o.maxDepth && (kind.IsOpener() || kind == block.KindDecorator) {
			if start, bodyIndent, ok := o.body(rng, indent); ok {
				b.Children = o.level(start, rng.EndLine, bodyIndent, depth+1)
			}
		}
		blocks = append(blocks, b)
		i = max(rng.EndLine, i) + 1
	}
	return blocks
}

// body finds the first line of rng indented deeper than indent.
func (o *outliner) body(rng block.Range, indent int) (start, bodyIndent int, ok bool) {
	for j := rng.StartLine + 1; j <= rng.EndLine; j++ {
		line := o.buf.LineAt(j)
		if line.IsBlank() {
			continue
		}
		if line.Indent() > indent {
			return j, line.Indent(), true
		}
	}
	return 0, 0, false
}

// Visit calls fn for every block in depth-first order.
func Visit(blocks []Block, fn func(Block)) {
	for _, b := range blocks {
		fn(b)
		Visit(b.Children, fn)
	}
}
