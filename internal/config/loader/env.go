package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/pyselect/internal/config/layer"
)

// DefaultEnvPrefix is the prefix pyselect environment variables carry.
const DefaultEnvPrefix = "PYSELECT_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "PYSELECT_")
	mapping map[string]string // Env var -> config path; "" skips the var
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "PYSELECT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// WithEnviron replaces the source of KEY=value pairs, os.Environ by default.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "MODE":       "resolver.mode",
		prefix + "KEYWORDS":   "resolver.keywords",
		prefix + "LOG_LEVEL":  "logging.level",
		prefix + "LANGUAGES":  "languages.ids",
		prefix + "CACHE_SIZE": "server.cacheSize",
		// Read directly by the CLI.
		prefix + "CONFIG": "",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if ok {
			vars[name] = value
		}
	}
	return l.FromVars(vars), nil
}

// FromVars converts prefixed variables to a configuration map.
// Variables without the prefix are ignored.
func (l *EnvLoader) FromVars(vars map[string]string) map[string]any {
	config := make(map[string]any)
	for name, value := range vars {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		layer.SetByPath(config, path, parseValue(value))
	}
	return config
}

// envToPath converts PYSELECT_VIEW_SCROLL_OFF to view.scrollOff.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return strings.ToLower(name)
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + setting
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only try floats with a decimal point to avoid misinterpreting ints.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}
