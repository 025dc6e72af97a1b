// Package layer provides configuration layer management for pyselect.
//
// The layer package handles multiple configuration sources with priority-based
// merging. Higher priority layers override values from lower priority layers.
package layer

import (
	"time"
)

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "project", "defaults").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any

	// ModTime is when the layer was loaded.
	ModTime time.Time
}

// NewLayer creates a new empty configuration layer with the source's
// default name and priority.
func NewLayer(source Source) *Layer {
	return NewLayerWithData(source, make(map[string]any))
}

// NewLayerWithData creates a new layer with initial data.
func NewLayerWithData(source Source, data map[string]any) *Layer {
	return &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: DefaultPriority(source),
		Data:     data,
		ModTime:  time.Now(),
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Path:     l.Path,
		Data:     cloneMap(l.Data),
		ModTime:  l.ModTime,
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default configuration.
	SourceBuiltin Source = iota
	// SourceUser represents the user config ($XDG_CONFIG_HOME/pyselect/).
	SourceUser
	// SourceProject represents .pyselect.toml or .pyselect.yaml in a project.
	SourceProject
	// SourceFile represents a file named on the command line.
	SourceFile
	// SourceDotEnv represents a project .env file.
	SourceDotEnv
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceFlags represents command-line flags.
	SourceFlags
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceFile:
		return "file"
	case SourceDotEnv:
		return "dotenv"
	case SourceEnv:
		return "environment"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Standard priority levels for configuration layers.
// Higher values override lower values during merging.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityProject = 200
	PriorityFile    = 250
	PriorityDotEnv  = 400
	PriorityEnv     = 500
	PriorityFlags   = 600
)

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceUser:
		return PriorityUser
	case SourceProject:
		return PriorityProject
	case SourceFile:
		return PriorityFile
	case SourceDotEnv:
		return PriorityDotEnv
	case SourceEnv:
		return PriorityEnv
	case SourceFlags:
		return PriorityFlags
	default:
		return PriorityBuiltin
	}
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}
	return dst
}
