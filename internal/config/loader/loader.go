// Package loader turns config sources into nested maps: TOML and YAML
// files, .env files and PYSELECT_* environment variables.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads one source. A source that does not exist yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the subset of file access loaders need, so tests can
// serve config files from memory.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS reads from disk.
func DefaultFS() FileSystem { return osFS{} }

// ErrUnsupportedFormat is returned by ForPath for extensions other than
// .toml, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ForPath picks a loader by extension.
func ForPath(fsys FileSystem, path string) (Loader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedFormat, ext, path)
	}
}

// readFile returns nil data for a missing file.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
}

// ParseError is a syntax error in a config file. Line and Column are
// 1-based and zero when the parser gave no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error formats as path:line:col: message, dropping unknown positions.
func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc += fmt.Sprintf(":%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	return loc + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
