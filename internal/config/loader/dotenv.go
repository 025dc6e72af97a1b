package loader

import (
	"bytes"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads a .env file and maps its prefixed variables the way
// EnvLoader maps the process environment. Variables are not exported to the
// process.
type DotEnvLoader struct {
	fs   FileSystem
	path string
	env  *EnvLoader
}

// NewDotEnvLoader creates a loader for the .env file at path.
func NewDotEnvLoader(fs FileSystem, path string, env *EnvLoader) *DotEnvLoader {
	return &DotEnvLoader{fs: fs, path: path, env: env}
}

// Load parses the file. A missing file yields nil, nil.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	return l.env.FromVars(vars), nil
}
