package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LanguageMatcher decides which documents block commands apply to, by
// language identifier or by path glob.
type LanguageMatcher struct {
	ids      map[string]struct{}
	primary  string
	patterns []string
}

// NewLanguageMatcher creates a matcher for the given language identifiers
// and doublestar path patterns. The first identifier is reported by
// LanguageID for paths that match a pattern.
func NewLanguageMatcher(ids, patterns []string) (*LanguageMatcher, error) {
	m := &LanguageMatcher{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if m.primary == "" {
			m.primary = id
		}
		m.ids[id] = struct{}{}
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

// Matches reports whether a document with the given path and language
// identifier is eligible. An empty identifier falls back to the path.
func (m *LanguageMatcher) Matches(path, languageID string) bool {
	if languageID != "" {
		if _, ok := m.ids[strings.ToLower(languageID)]; ok {
			return true
		}
	}
	return m.MatchPath(path)
}

// MatchPath reports whether path matches one of the patterns.
func (m *LanguageMatcher) MatchPath(path string) bool {
	if path == "" {
		return false
	}
	p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	for _, pattern := range m.patterns {
		// Patterns were validated in NewLanguageMatcher.
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// LanguageID returns the primary language identifier when path matches,
// and "" otherwise.
func (m *LanguageMatcher) LanguageID(path string) string {
	if m.MatchPath(path) {
		return m.primary
	}
	return ""
}

// Patterns returns a copy of the path patterns.
func (m *LanguageMatcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
