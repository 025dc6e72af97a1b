package block

import (
	"unicode"
	"unicode/utf8"
)

// Kind classifies a line by its leading token.
type Kind uint8

const (
	// KindPlain is any line that does not open a block.
	KindPlain Kind = iota
	// KindBlockOpener is a block keyword followed by whitespace or ':'.
	KindBlockOpener
	// KindClassOrFunction is a def or class header with a name.
	KindClassOrFunction
	// KindDecorator is '@' followed by an identifier.
	KindDecorator
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindBlockOpener:
		return "opener"
	case KindClassOrFunction:
		return "definition"
	case KindDecorator:
		return "decorator"
	default:
		return "unknown"
	}
}

// IsOpener reports whether the kind introduces an indented block.
func (k Kind) IsOpener() bool {
	return k == KindBlockOpener || k == KindClassOrFunction
}

// IsBoundary reports whether a line of this kind at the reference
// indentation starts a new sibling block.
func (k Kind) IsBoundary() bool {
	return k != KindPlain
}

// DefaultKeywords is the canonical set of block-opening keywords.
// return and raise are deliberately absent; they classify as KindPlain.
var DefaultKeywords = []string{
	"def", "class",
	"if", "elif", "else",
	"for", "while",
	"try", "except", "finally",
	"with", "async",
}

// Classifier assigns a Kind to line text.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	keywords map[string]struct{}
}

// NewClassifier creates a classifier for the given keywords.
// With no keywords it uses DefaultKeywords.
func NewClassifier(keywords ...string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	c := &Classifier{keywords: make(map[string]struct{}, len(keywords))}
	for _, kw := range keywords {
		if kw != "" {
			c.keywords[kw] = struct{}{}
		}
	}
	return c
}

// defaultClassifier backs Classify.
var defaultClassifier = NewClassifier()

// Classify classifies text with the default keyword set.
func Classify(text string) Kind {
	return defaultClassifier.Classify(text)
}

// Keywords returns the classifier's keywords in no particular order.
func (c *Classifier) Keywords() []string {
	out := make([]string, 0, len(c.keywords))
	for kw := range c.keywords {
		out = append(out, kw)
	}
	return out
}

// Classify returns the kind of the given line text.
// Blank text is KindPlain; callers check blankness first.
func (c *Classifier) Classify(text string) Kind {
	rest := skipSpace(text)
	if rest == "" {
		return KindPlain
	}

	if rest[0] == '@' {
		if len(rest) > 1 && isWordByte(rest[1]) {
			return KindDecorator
		}
		return KindPlain
	}

	word, after := leadingWord(rest)
	if word == "" {
		return KindPlain
	}

	if isDefinitionHeader(word, after) {
		return KindClassOrFunction
	}

	if _, ok := c.keywords[word]; !ok {
		return KindPlain
	}
	if after == "" {
		return KindPlain
	}
	r, _ := utf8.DecodeRuneInString(after)
	if r == ':' || unicode.IsSpace(r) {
		return KindBlockOpener
	}
	return KindPlain
}

// ClassifyLine classifies a buffer line. Blank lines are KindPlain.
func (c *Classifier) ClassifyLine(l Line) Kind {
	if l.IsBlank() {
		return KindPlain
	}
	return c.Classify(l.Text())
}

// isDefinitionHeader reports whether word followed by after forms
// "def name", "class Name" or "async def name".
func isDefinitionHeader(word, after string) bool {
	if word == "async" {
		rest := skipSpace(after)
		if len(rest) == len(after) {
			return false
		}
		word, after = leadingWord(rest)
		if word != "def" {
			return false
		}
	}
	if word != "def" && word != "class" {
		return false
	}
	name := skipSpace(after)
	if len(name) == len(after) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r == '_' || unicode.IsLetter(r)
}

// leadingWord splits s into its leading identifier and the remainder.
func leadingWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// skipSpace trims leading Unicode whitespace.
func skipSpace(s string) string {
	for i, r := range s {
		if !unicode.IsSpace(r) {
			return s[i:]
		}
	}
	return ""
}

// isWordByte matches the ASCII identifier class [A-Za-z0-9_].
func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
