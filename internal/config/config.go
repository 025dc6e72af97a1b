package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/config/layer"
	"github.com/dshills/pyselect/internal/config/loader"
)

// Config provides unified access to the pyselect configuration.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager
	fs     loader.FileSystem

	userConfigDir string
	projectDir    string
	configFile    string
	envPrefix     string
	environ       func() []string

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithProjectDir sets the directory searched for .pyselect.toml,
// .pyselect.yaml and .env.
func WithProjectDir(dir string) Option {
	return func(c *Config) {
		c.projectDir = dir
	}
}

// WithConfigFile adds an explicitly named config file (TOML or YAML).
// Unlike the other files it must exist.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithFileSystem replaces the file system files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnviron replaces the environment source, os.Environ by default.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a new Config instance with the given options.
// Only the defaults layer is present until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		environ:   os.Environ,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	c.layers.AddLayer(layer.NewLayerWithData(layer.SourceBuiltin, defaultConfig()))
	return c
}

// Load loads configuration from all sources.
func (c *Config) Load(ctx context.Context) error {
	steps := []func() error{
		c.loadUser,
		c.loadProject,
		c.loadConfigFile,
		c.loadDotEnv,
		c.loadEnvironment,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// loadFirst adds a layer from the first existing file among candidates.
func (c *Config) loadFirst(source layer.Source, candidates ...string) error {
	for _, path := range candidates {
		l, err := loader.ForPath(c.fs, path)
		if err != nil {
			return err
		}
		data, err := l.Load()
		if err != nil {
			return fmt.Errorf("loading %s config: %w", source, err)
		}
		if data == nil {
			continue
		}
		lyr := layer.NewLayerWithData(source, data)
		lyr.Path = path
		c.layers.AddLayer(lyr)
		return nil
	}
	return nil
}

func (c *Config) loadUser() error {
	return c.loadFirst(layer.SourceUser,
		filepath.Join(c.userConfigDir, "config.toml"),
		filepath.Join(c.userConfigDir, "config.yaml"),
	)
}

func (c *Config) loadProject() error {
	if c.projectDir == "" {
		return nil
	}
	return c.loadFirst(layer.SourceProject,
		filepath.Join(c.projectDir, ".pyselect.toml"),
		filepath.Join(c.projectDir, ".pyselect.yaml"),
		filepath.Join(c.projectDir, ".pyselect.yml"),
	)
}

func (c *Config) loadConfigFile() error {
	if c.configFile == "" {
		return nil
	}
	if _, err := c.fs.Stat(c.configFile); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	return c.loadFirst(layer.SourceFile, c.configFile)
}

func (c *Config) envLoader() *loader.EnvLoader {
	return loader.NewEnvLoader(c.envPrefix).WithEnviron(c.environ)
}

func (c *Config) loadDotEnv() error {
	if c.projectDir == "" {
		return nil
	}
	path := filepath.Join(c.projectDir, ".env")
	data, err := loader.NewDotEnvLoader(c.fs, path, c.envLoader()).Load()
	if err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	if len(data) > 0 {
		lyr := layer.NewLayerWithData(layer.SourceDotEnv, data)
		lyr.Path = path
		c.layers.AddLayer(lyr)
	}
	return nil
}

func (c *Config) loadEnvironment() error {
	data, err := c.envLoader().Load()
	if err != nil {
		return err
	}
	if len(data) > 0 {
		c.layers.AddLayer(layer.NewLayerWithData(layer.SourceEnv, data))
	}
	return nil
}

// SetFlag records a command-line override. Flags beat every other layer.
func (c *Config) SetFlag(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := make(map[string]any)
	if flags := c.layers.GetLayer(layer.SourceFlags.String()); flags != nil && flags.Data != nil {
		data = flags.Clone().Data
	}
	layer.SetByPath(data, path, value)
	c.layers.AddLayer(layer.NewLayerWithData(layer.SourceFlags, data))
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	return c.layers.Value(path)
}

// Source returns the name of the layer that supplies path, or "".
func (c *Config) Source(path string) string {
	return c.layers.WhichLayer(path)
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Want: "string", Value: v}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, &TypeError{Path: path, Want: "int", Value: v}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Want: "bool", Value: v}
	}
	return b, nil
}

// GetStringSlice returns a string slice at the given path.
// A single string is split on commas, the form environment variables use.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Want: "[]string", Value: v}
			}
			result[i] = s
		}
		return result, nil
	case string:
		var result []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Want: "[]string", Value: v}
	}
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pyselect")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pyselect")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	keywords := make([]any, len(block.DefaultKeywords))
	for i, kw := range block.DefaultKeywords {
		keywords[i] = kw
	}

	return map[string]any{
		"resolver": map[string]any{
			"mode":     "block",
			"keywords": keywords,
		},
		"languages": map[string]any{
			"ids":      []any{"python"},
			"patterns": []any{"**/*.py", "**/*.pyi"},
		},
		"logging": map[string]any{
			"level": "info",
		},
		"view": map[string]any{
			"selectionColor": "#264f78",
			"gutterColor":    "#858585",
			"scrollOff":      3,
			"tabWidth":       4,
			"reveal":         "minimal",
			"historySize":    100,
		},
		"server": map[string]any{
			"cacheSize": 64,
		},
		"outline": map[string]any{
			"includeHidden": false,
			"exclude":       []any{"__pycache__", ".venv", "venv", ".tox", "node_modules"},
			"maxDepth":      1,
			"workers":       4,
		},
	}
}
