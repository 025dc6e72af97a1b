package loader

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/pyselect/internal/config/layer"
)

// ErrIncludeDepthExceeded indicates too many nested @include directives.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// DefaultIncludeDepth bounds nested @include directives.
const DefaultIncludeDepth = 8

// TOMLLoader loads configuration from TOML files.
// A top-level "@include" key names further files, resolved relative to the
// including file, whose values the including file overrides.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path, following includes.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.LoadWithIncludes(l.path, DefaultIncludeDepth)
}

// LoadFrom reads a single file without processing includes.
func (l *TOMLLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseTOML(path, data)
}

// ParseTOML parses TOML data into a map. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return config, nil
}

// LoadWithIncludes loads a TOML file and processes @include directives.
// The maxDepth parameter limits nested includes to prevent infinite loops.
func (l *TOMLLoader) LoadWithIncludes(path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	config, err := l.LoadFrom(path)
	if err != nil || config == nil {
		return config, err
	}

	includes, hasIncludes := config["@include"]
	if !hasIncludes {
		return config, nil
	}
	delete(config, "@include")

	var includeList []string
	switch v := includes.(type) {
	case string:
		includeList = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include in %s must be string or array of strings", path)
			}
			includeList = append(includeList, s)
		}
	default:
		return nil, fmt.Errorf("@include in %s must be string or array of strings, got %T", path, includes)
	}

	baseDir := filepath.Dir(path)
	merged := make(map[string]any)
	for _, inc := range includeList {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}

		incConfig, err := l.LoadWithIncludes(incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		merged = layer.DeepMerge(merged, incConfig)
	}

	// The including file overrides its includes.
	return layer.DeepMerge(merged, config), nil
}
