package layer

import (
	"cmp"
	"slices"
	"sync"
)

// Manager stacks layers and serves the merged view of them. The merged
// map and the origin of every leaf are rebuilt lazily after a change.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // ascending priority

	merged map[string]any
	origin map[string]string // leaf path -> layer name
	stale  bool
}

// NewManager returns an empty stack.
func NewManager() *Manager {
	return &Manager{stale: true}
}

// AddLayer inserts l, replacing a layer of the same name.
func (m *Manager) AddLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = slices.DeleteFunc(m.layers, func(x *Layer) bool { return x.Name == l.Name })
	m.layers = append(m.layers, l)
	slices.SortStableFunc(m.layers, func(a, b *Layer) int { return cmp.Compare(a.Priority, b.Priority) })
	m.stale = true
}

// RemoveLayer drops the named layer and reports whether it existed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.layers)
	m.layers = slices.DeleteFunc(m.layers, func(x *Layer) bool { return x.Name == name })
	if len(m.layers) == n {
		return false
	}
	m.stale = true
	return true
}

// GetLayer returns the named layer or nil.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := slices.IndexFunc(m.layers, func(x *Layer) bool { return x.Name == name }); i >= 0 {
		return m.layers[i]
	}
	return nil
}

// Layers returns the stack, lowest priority first.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.layers)
}

// Merge returns a private copy of the merged configuration.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
	return cloneMap(m.merged)
}

// Value returns a copy of the merged value at a dotted path.
func (m *Manager) Value(path string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
	v, ok := GetByPath(m.merged, path)
	return cloneValue(v), ok
}

// WhichLayer names the layer that set path, or "" when nothing did.
// For a section it names the highest priority layer contributing to it.
func (m *Manager) WhichLayer(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()

	if name, ok := m.origin[path]; ok {
		return name
	}
	if _, ok := GetByPath(m.merged, path); !ok {
		return ""
	}
	best, bestPrio := "", -1
	for _, l := range m.layers {
		if _, ok := GetByPath(l.Data, path); ok && l.Priority >= bestPrio {
			best, bestPrio = l.Name, l.Priority
		}
	}
	return best
}

// Invalidate forces a rebuild after layer data was edited in place.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale = true
}

func (m *Manager) refreshLocked() {
	if !m.stale && m.merged != nil {
		return
	}
	merged := make(map[string]any)
	origin := make(map[string]string)
	for _, l := range m.layers {
		merged = DeepMerge(merged, l.Data)
		walkLeaves(l.Data, "", func(path string) { origin[path] = l.Name })
	}
	m.merged, m.origin, m.stale = merged, origin, false
}
