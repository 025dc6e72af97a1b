package config

import (
	"errors"

	"github.com/dshills/pyselect/internal/block"
)

// ResolverConfig configures block resolution.
type ResolverConfig struct {
	// Mode is "block" or "forward".
	Mode string
	// Keywords is the block-opening keyword set.
	Keywords []string
}

// LanguagesConfig selects the documents resolution applies to.
type LanguagesConfig struct {
	// IDs are accepted editor language identifiers.
	IDs []string
	// Patterns are doublestar globs matched against document paths.
	Patterns []string
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string
}

// ViewConfig configures the terminal viewer.
type ViewConfig struct {
	// SelectionColor is the background of selected lines, as a hex colour.
	SelectionColor string
	// GutterColor is the line number colour, as a hex colour.
	GutterColor string
	// ScrollOff is the number of lines kept visible around a revealed line.
	ScrollOff int
	// TabWidth is the display width of a tab.
	TabWidth int
	// Reveal is "minimal" or "center": how a selection end is scrolled
	// into view.
	Reveal string
	// HistorySize is how many earlier selections shrink can step back
	// through.
	HistorySize int
}

// ServerConfig configures the JSON-lines server.
type ServerConfig struct {
	// CacheSize is the number of documents kept parsed.
	CacheSize int
}

// OutlineConfig configures project outlines.
type OutlineConfig struct {
	// IncludeHidden walks dot-files and dot-directories.
	IncludeHidden bool
	// Exclude lists directory names never descended into.
	Exclude []string
	// MaxDepth is how many levels of nested blocks are listed; 1 lists
	// top-level blocks only.
	MaxDepth int
	// Workers is the number of files outlined in parallel.
	Workers int
}

// Resolver returns the resolver configuration.
func (c *Config) Resolver() ResolverConfig {
	cfg := ResolverConfig{
		Mode:     c.getStringOr("resolver.mode", "block"),
		Keywords: c.getStringSliceOr("resolver.keywords", block.DefaultKeywords),
	}
	if _, err := block.ParseMode(cfg.Mode); err != nil {
		c.recordConfigError("resolver.mode", err)
		cfg.Mode = block.ModeBlock.String()
	}
	return cfg
}

// Languages returns the language guard configuration.
func (c *Config) Languages() LanguagesConfig {
	return LanguagesConfig{
		IDs:      c.getStringSliceOr("languages.ids", []string{"python"}),
		Patterns: c.getStringSliceOr("languages.patterns", []string{"**/*.py", "**/*.pyi"}),
	}
}

// Logging returns the logging configuration.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

// View returns the viewer configuration.
func (c *Config) View() ViewConfig {
	return ViewConfig{
		SelectionColor: c.getStringOr("view.selectionColor", "#264f78"),
		GutterColor:    c.getStringOr("view.gutterColor", "#858585"),
		ScrollOff:      c.getIntOr("view.scrollOff", 3),
		TabWidth:       c.getIntOr("view.tabWidth", 4),
		Reveal:         c.getStringOr("view.reveal", "minimal"),
		HistorySize:    c.getIntOr("view.historySize", 100),
	}
}

// Server returns the server configuration.
func (c *Config) Server() ServerConfig {
	size := c.getIntOr("server.cacheSize", 64)
	if size <= 0 {
		c.recordConfigError("server.cacheSize", &TypeError{Path: "server.cacheSize", Want: "positive int", Value: size})
		size = 64
	}
	return ServerConfig{CacheSize: size}
}

// Outline returns the project outline configuration.
func (c *Config) Outline() OutlineConfig {
	return OutlineConfig{
		IncludeHidden: c.getBoolOr("outline.includeHidden", false),
		Exclude:       c.getStringSliceOr("outline.exclude", nil),
		MaxDepth:      c.getIntOr("outline.maxDepth", 1),
		Workers:       c.getIntOr("outline.workers", 4),
	}
}

// Helper methods for getting values with defaults.
// These only return the default silently for ErrSettingNotFound; type
// errors are recorded and also yield the default.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		v = defaultValue
	}
	// Return a copy to enforce snapshot guarantee
	result := make([]string, len(v))
	copy(result, v)
	return result
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}

// ClearConfigErrors clears any stored configuration errors.
func (c *Config) ClearConfigErrors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors = nil
}
