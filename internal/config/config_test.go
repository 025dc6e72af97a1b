package config

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/pyselect/internal/block"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return fileInfo(path), nil
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func noEnv() []string { return nil }

func newTestConfig(t *testing.T, files memFS, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithFileSystem(files),
		WithUserConfigDir("/home/u/.config/pyselect"),
		WithProjectDir("/proj"),
		WithEnviron(noEnv),
	}
	c := New(append(base, opts...)...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := newTestConfig(t, memFS{})

	r := c.Resolver()
	if r.Mode != "block" {
		t.Errorf("Mode = %q, want block", r.Mode)
	}
	if !reflect.DeepEqual(r.Keywords, block.DefaultKeywords) {
		t.Errorf("Keywords = %v", r.Keywords)
	}
	if got := c.Languages().IDs; len(got) != 1 || got[0] != "python" {
		t.Errorf("IDs = %v", got)
	}
	if c.Server().CacheSize != 64 {
		t.Errorf("CacheSize = %d", c.Server().CacheSize)
	}
	if c.View().ScrollOff != 3 {
		t.Errorf("ScrollOff = %d", c.View().ScrollOff)
	}
	if c.View().HistorySize != 100 {
		t.Errorf("HistorySize = %d", c.View().HistorySize)
	}
	if c.View().Reveal != "minimal" {
		t.Errorf("Reveal = %q", c.View().Reveal)
	}
	if c.Logging().Level != "info" {
		t.Errorf("Level = %q", c.Logging().Level)
	}
	if len(c.Outline().Exclude) == 0 || c.Outline().IncludeHidden {
		t.Errorf("Outline = %+v", c.Outline())
	}
	if errs := c.ConfigErrors(); len(errs) != 0 {
		t.Errorf("unexpected config errors %v", errs)
	}
}

func TestLayerPrecedence(t *testing.T) {
	files := memFS{
		"/home/u/.config/pyselect/config.toml": `
[resolver]
mode = "forward"
[view]
scrollOff = 7
[server]
cacheSize = 5
`,
		"/proj/.pyselect.yaml": `
view:
  scrollOff: 9
logging:
  level: warn
`,
		"/proj/.env": "PYSELECT_LOG_LEVEL=error\n",
	}
	env := func() []string { return []string{"PYSELECT_CACHE_SIZE=11"} }

	c := newTestConfig(t, files, WithEnviron(env))
	c.SetFlag("resolver.mode", "block")

	if got := c.Resolver().Mode; got != "block" {
		t.Errorf("flag should win: mode = %q", got)
	}
	if got := c.View().ScrollOff; got != 9 {
		t.Errorf("project should beat user: scrollOff = %d", got)
	}
	if got := c.Logging().Level; got != "error" {
		t.Errorf(".env should beat project: level = %q", got)
	}
	if got := c.Server().CacheSize; got != 11 {
		t.Errorf("environment should beat files: cacheSize = %d", got)
	}

	sources := map[string]string{
		"resolver.mode":    "flags",
		"view.scrollOff":   "project",
		"logging.level":    "dotenv",
		"server.cacheSize": "environment",
		"view.tabWidth":    "defaults",
	}
	for path, want := range sources {
		if got := c.Source(path); got != want {
			t.Errorf("Source(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestConfigFile(t *testing.T) {
	files := memFS{
		"/etc/ps.toml": "[resolver]\nkeywords = [\"def\", \"class\"]\n",
	}
	c := newTestConfig(t, files, WithConfigFile("/etc/ps.toml"))

	if got := c.Resolver().Keywords; !reflect.DeepEqual(got, []string{"def", "class"}) {
		t.Errorf("Keywords = %v", got)
	}
}

func TestConfigFileMissing(t *testing.T) {
	c := New(
		WithFileSystem(memFS{}),
		WithUserConfigDir("/u"),
		WithEnviron(noEnv),
		WithConfigFile("/missing.toml"),
	)

	if err := c.Load(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	files := memFS{"/proj/.pyselect.toml": "[resolver\n"}
	c := New(WithFileSystem(files), WithUserConfigDir("/u"), WithProjectDir("/proj"), WithEnviron(noEnv))

	err := c.Load(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithFileSystem(memFS{}), WithEnviron(noEnv))
	if err := c.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestKeywordsFromCommaList(t *testing.T) {
	env := func() []string { return []string{"PYSELECT_KEYWORDS=def, class ,if"} }
	c := newTestConfig(t, memFS{}, WithEnviron(env))

	if got := c.Resolver().Keywords; !reflect.DeepEqual(got, []string{"def", "class", "if"}) {
		t.Errorf("Keywords = %v", got)
	}
}

func TestTypeMismatchRecorded(t *testing.T) {
	files := memFS{
		"/proj/.pyselect.toml": `
[view]
scrollOff = "lots"
[resolver]
mode = "sideways"
`,
	}
	c := newTestConfig(t, files)

	if got := c.View().ScrollOff; got != 3 {
		t.Errorf("ScrollOff = %d, want default 3", got)
	}
	if got := c.Resolver().Mode; got != "block" {
		t.Errorf("Mode = %q, want block", got)
	}

	errs := c.ConfigErrors()
	if !errors.Is(errs["view.scrollOff"], ErrTypeMismatch) {
		t.Errorf("view.scrollOff error = %v", errs["view.scrollOff"])
	}
	if errs["resolver.mode"] == nil {
		t.Error("invalid mode should be recorded")
	}

	c.ClearConfigErrors()
	if c.ConfigErrors() != nil {
		t.Error("ClearConfigErrors should reset")
	}
}

func TestGetters(t *testing.T) {
	c := newTestConfig(t, memFS{})

	if _, err := c.GetString("nope.nothing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("GetString missing = %v", err)
	}
	if _, err := c.GetInt("logging.level"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetInt on string = %v", err)
	}
	if _, err := c.GetBool("view.scrollOff"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetBool on int = %v", err)
	}

	c.SetFlag("view.ratio", 2.5)
	if _, err := c.GetInt("view.ratio"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetInt on fraction = %v", err)
	}
}

func TestMergedIsCopy(t *testing.T) {
	c := newTestConfig(t, memFS{})
	m := c.Merged()
	m["resolver"].(map[string]any)["mode"] = "forward"

	if c.Resolver().Mode != "block" {
		t.Error("Merged result should not alias config state")
	}
}
