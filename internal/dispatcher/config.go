package dispatcher

import "fmt"

// DefaultMaxCount caps the count a command runs with.
const DefaultMaxCount = 1000

// Reveal decides how a command's scroll target is brought into view.
type Reveal uint8

const (
	// RevealMinimal scrolls only when the target is off screen.
	RevealMinimal Reveal = iota
	// RevealCenter always centers the target line.
	RevealCenter
)

// String returns the config spelling of the policy.
func (r Reveal) String() string {
	if r == RevealCenter {
		return "center"
	}
	return "minimal"
}

// ParseReveal parses "minimal" or "center". The empty string is minimal.
func ParseReveal(s string) (Reveal, error) {
	switch s {
	case "", "minimal":
		return RevealMinimal, nil
	case "center":
		return RevealCenter, nil
	}
	return RevealMinimal, fmt.Errorf("unknown reveal policy %q (want minimal or center)", s)
}

// Config holds dispatcher options.
type Config struct {
	// Metrics collects per-command dispatch counts and durations.
	Metrics bool

	// RecoverPanics turns a handler panic into an error result.
	RecoverPanics bool

	// MaxCount caps Action.Count. Zero means no cap.
	MaxCount int

	// Reveal is applied to every scroll target a handler returns.
	Reveal Reveal
}

// DefaultConfig recovers panics, caps counts and reveals minimally.
func DefaultConfig() Config {
	return Config{
		RecoverPanics: true,
		MaxCount:      DefaultMaxCount,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.Metrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverPanics = recover
	return c
}

// WithMaxRepeatCount returns a copy of the config with the count cap set.
func (c Config) WithMaxRepeatCount(max int) Config {
	c.MaxCount = max
	return c
}

// WithReveal returns a copy of the config with the reveal policy set.
func (c Config) WithReveal(r Reveal) Config {
	c.Reveal = r
	return c
}
