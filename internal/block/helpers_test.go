package block

import "strings"

// textLine is a minimal Line used by the tests.
type textLine struct {
	text   string
	number int
}

func (l textLine) Text() string { return l.text }

func (l textLine) IsBlank() bool {
	_, blank := MeasureIndent(l.text)
	return blank
}

func (l textLine) Indent() int {
	indent, _ := MeasureIndent(l.text)
	return indent
}

func (l textLine) Number() int { return l.number }

// textBuffer is a minimal Buffer over a slice of lines.
type textBuffer []string

func newTextBuffer(src string) textBuffer {
	return textBuffer(strings.Split(src, "\n"))
}

func (b textBuffer) LineCount() int { return len(b) }

func (b textBuffer) LineAt(n int) Line { return textLine{text: b[n], number: n} }

const funcsSource = `def foo():
    x = 1

    y = 2
def bar():`

const statementsSource = `import os
import sys

x = 1
y = foo(
    2,
)
z = 3

print(x)`

const classSource = `@dataclass
@other(x=1)
class Point:
    x: int

    @property
    def norm(self):
        return 0

def helper():
    pass`

const branchSource = `if a:
    b()
else:
    c()`
