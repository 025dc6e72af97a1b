package config

import (
	"errors"
	"fmt"

	"github.com/dshills/pyselect/internal/config/loader"
)

var (
	// ErrSettingNotFound is returned for a path no layer sets.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch matches every *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError reports a malformed config file with its position.
type ParseError = loader.ParseError

// TypeError reports a setting whose value cannot serve as Want.
type TypeError struct {
	Path  string
	Want  string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Path, e.Want, describe(e.Value))
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// describe names a decoded TOML/YAML/env value for error messages.
// Scalars carry their value so "-3" reads better than "int".
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("string %q", t)
	case bool, int, int64, float64:
		return fmt.Sprintf("%T %v", t, t)
	case []any, []string:
		return "list"
	case map[string]any:
		return "table"
	}
	return fmt.Sprintf("%T", v)
}
