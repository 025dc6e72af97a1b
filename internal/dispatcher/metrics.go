package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/pyselect/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics per command.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandStats

	totalDispatches uint64
	totalNoOps      uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// CommandStats holds the counters for one command.
// No-op dispatches are counted apart from errors: a resolution that finds
// nothing to select is a normal outcome.
type CommandStats struct {
	Name          string
	DispatchCount uint64
	NoOpCount     uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandStats),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	cs := m.commands[name]
	if cs == nil {
		cs = &CommandStats{Name: name}
		m.commands[name] = cs
	}
	cs.DispatchCount++
	cs.TotalDuration += duration
	cs.LastStatus = status
	cs.LastDispatch = time.Now()
	if duration > cs.MaxDuration {
		cs.MaxDuration = duration
	}

	switch status {
	case handler.StatusNoOp:
		m.totalNoOps++
		cs.NoOpCount++
	case handler.StatusError:
		m.totalErrors++
		cs.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// Command returns a copy of the stats for one command, or nil.
func (m *Metrics) Command(name string) *CommandStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cs := m.commands[name]
	if cs == nil {
		return nil
	}
	out := *cs
	return &out
}

// Commands returns copies of all command stats ordered by name.
func (m *Metrics) Commands() []CommandStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CommandStats, 0, len(m.commands))
	for _, cs := range m.commands {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = make(map[string]*CommandStats)
	m.totalDispatches = 0
	m.totalNoOps = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the totals.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalNoOps      uint64
	TotalErrors     uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	CommandCount    int
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalNoOps:      m.totalNoOps,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		CommandCount:    len(m.commands),
	}
	if m.totalDispatches > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return s
}

// AverageDuration returns the mean duration of the command's dispatches.
func (cs CommandStats) AverageDuration() time.Duration {
	if cs.DispatchCount == 0 {
		return 0
	}
	return cs.TotalDuration / time.Duration(cs.DispatchCount)
}
