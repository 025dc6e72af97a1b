package layer

import (
	"testing"
)

func TestNewLayer(t *testing.T) {
	l := NewLayer(SourceProject)

	if l.Name != "project" {
		t.Errorf("Name = %q, want project", l.Name)
	}
	if l.Priority != PriorityProject {
		t.Errorf("Priority = %d, want %d", l.Priority, PriorityProject)
	}
	if l.Data == nil {
		t.Error("Data should be initialized")
	}
}

func TestLayer_Clone(t *testing.T) {
	l := NewLayerWithData(SourceUser, map[string]any{
		"resolver": map[string]any{"keywords": []any{"def", "class"}},
	})
	clone := l.Clone()

	kw := clone.Data["resolver"].(map[string]any)["keywords"].([]any)
	kw[0] = "changed"

	orig := l.Data["resolver"].(map[string]any)["keywords"].([]any)
	if orig[0] != "def" {
		t.Error("clone shares slice with original")
	}
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
	}{
		{SourceBuiltin, "defaults"},
		{SourceUser, "user"},
		{SourceProject, "project"},
		{SourceFile, "file"},
		{SourceDotEnv, "dotenv"},
		{SourceEnv, "environment"},
		{SourceFlags, "flags"},
		{Source(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.source.String(); got != tt.expected {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.expected)
		}
	}
}

func TestManager_MergePriority(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceEnv, map[string]any{
		"resolver": map[string]any{"mode": "forward"},
	}))
	m.AddLayer(NewLayerWithData(SourceBuiltin, map[string]any{
		"resolver": map[string]any{"mode": "block", "keywords": []any{"def"}},
		"logging":  map[string]any{"level": "info"},
	}))

	merged := m.Merge()
	resolver := merged["resolver"].(map[string]any)

	if resolver["mode"] != "forward" {
		t.Errorf("mode = %v, want forward", resolver["mode"])
	}
	if resolver["keywords"] == nil {
		t.Error("lower layer keys should survive the merge")
	}
	if got := m.WhichLayer("resolver.mode"); got != "environment" {
		t.Errorf("WhichLayer = %q, want environment", got)
	}
	if got := m.WhichLayer("logging.level"); got != "defaults" {
		t.Errorf("WhichLayer = %q, want defaults", got)
	}
}

func TestManager_AddLayerReplacesByName(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceFlags, map[string]any{"a": 1}))
	m.AddLayer(NewLayerWithData(SourceFlags, map[string]any{"a": 2}))

	if n := len(m.Layers()); n != 1 {
		t.Fatalf("expected 1 layer, got %d", n)
	}
	if v, _ := m.Value("a"); v != 2 {
		t.Errorf("a = %v, want 2", v)
	}
}

func TestManager_RemoveAndInvalidate(t *testing.T) {
	m := NewManager()
	l := NewLayerWithData(SourceUser, map[string]any{"a": 1})
	m.AddLayer(l)

	if v, _ := m.Value("a"); v != 1 {
		t.Fatalf("a = %v, want 1", v)
	}

	l.Data["a"] = 5
	m.Invalidate()
	if v, _ := m.Value("a"); v != 5 {
		t.Errorf("after invalidate a = %v, want 5", v)
	}

	if !m.RemoveLayer("user") {
		t.Error("RemoveLayer should report removal")
	}
	if _, ok := m.Value("a"); ok {
		t.Error("value should be gone after removal")
	}
	if m.GetLayer("user") != nil {
		t.Error("layer should be gone")
	}
}

func TestManager_MergeReturnsCopy(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceUser, map[string]any{
		"view": map[string]any{"scrollOff": 3},
	}))

	merged := m.Merge()
	merged["view"].(map[string]any)["scrollOff"] = 99

	if v, _ := m.Value("view.scrollOff"); v != 3 {
		t.Errorf("cache mutated through Merge result: %v", v)
	}
}

func TestGetSetByPath(t *testing.T) {
	data := map[string]any{"a": "scalar"}

	SetByPath(data, "a.b.c", 1)
	if v, ok := GetByPath(data, "a.b.c"); !ok || v != 1 {
		t.Errorf("GetByPath = %v, %v", v, ok)
	}

	if _, ok := GetByPath(data, "a.x"); ok {
		t.Error("missing path should not be found")
	}
	if _, ok := GetByPath(nil, "a"); ok {
		t.Error("nil data should not be found")
	}
	if _, ok := GetByPath(data, ""); ok {
		t.Error("empty path should not be found")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"view": map[string]any{"scrollOff": 3, "selectionColor": "#264f78"},
	}
	src := map[string]any{
		"view":   map[string]any{"scrollOff": 5},
		"server": map[string]any{"cacheSize": 8},
	}

	out := DeepMerge(dst, src)
	view := out["view"].(map[string]any)

	if view["scrollOff"] != 5 || view["selectionColor"] != "#264f78" {
		t.Errorf("unexpected view section %v", view)
	}
	if out["server"].(map[string]any)["cacheSize"] != 8 {
		t.Error("new section missing")
	}
}

func TestManager_WhichLayerSection(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceBuiltin, map[string]any{
		"view": map[string]any{"scrollOff": 3},
	}))
	m.AddLayer(NewLayerWithData(SourceProject, map[string]any{
		"view": map[string]any{"reveal": "center"},
	}))

	if got := m.WhichLayer("view"); got != "project" {
		t.Errorf("WhichLayer(view) = %q, want project", got)
	}
	if got := m.WhichLayer("view.scrollOff"); got != "defaults" {
		t.Errorf("WhichLayer(view.scrollOff) = %q, want defaults", got)
	}
	if got := m.WhichLayer("view.missing"); got != "" {
		t.Errorf("WhichLayer(view.missing) = %q, want empty", got)
	}
}
