package block

import "fmt"

// Mode selects the resolution strategy.
type Mode uint8

const (
	// ModeBlock classifies the anchor and scans by block structure.
	ModeBlock Mode = iota
	// ModeForward scans downward from the line after the selection.
	ModeForward
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeForward:
		return "forward"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as used in configuration and flags.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "block", "block-aware", "":
		return ModeBlock, nil
	case "forward", "forward-scan":
		return ModeForward, nil
	default:
		return ModeBlock, fmt.Errorf("unknown resolution mode %q (must be block or forward)", s)
	}
}

// Resolver computes the next block selection.
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	mode       Mode
	classifier *Classifier
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets the resolution mode.
func WithMode(m Mode) Option {
	return func(r *Resolver) {
		r.mode = m
	}
}

// WithClassifier sets the line classifier.
func WithClassifier(c *Classifier) Option {
	return func(r *Resolver) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithKeywords uses a classifier built from the given keywords.
func WithKeywords(keywords ...string) Option {
	return WithClassifier(NewClassifier(keywords...))
}

// NewResolver creates a resolver. The default is ModeBlock with
// DefaultKeywords.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		mode:       ModeBlock,
		classifier: defaultClassifier,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the resolver's mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Classifier returns the resolver's classifier.
func (r *Resolver) Classifier() *Classifier {
	return r.classifier
}

// Scan runs the configured scanner without composing the result with sel.
func (r *Resolver) Scan(buf Buffer, sel Selection) (Range, error) {
	switch r.mode {
	case ModeForward:
		return ScanForward(buf, sel, r.classifier)
	default:
		return ScanBlock(buf, sel, r.classifier)
	}
}

// Resolve returns the range the caller should select next.
// It fails with ErrNoMoreLines, ErrBlankAnchor or ErrNoExpansion when no
// selection is possible; the caller keeps its current selection then.
// A malformed selection fails with ErrInvalidSelection.
func (r *Resolver) Resolve(buf Buffer, sel Selection) (Range, error) {
	scanned, err := r.Scan(buf, sel)
	if err != nil {
		return Range{}, err
	}
	if scanned.IsInverted() {
		return Range{}, ErrNoExpansion
	}
	return Compose(scanned, sel), nil
}
