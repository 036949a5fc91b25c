package dispatcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
)

// Metrics counts dispatched intents by kind and by the mode they were
// dispatched from. It may be read from another goroutine while the editor
// runs.
type Metrics struct {
	mu     sync.RWMutex
	kinds  map[intent.Kind]*IntentMetrics
	modes  map[mode.Kind]uint64
	total  IntentMetrics
	panics uint64
}

// IntentMetrics holds the counters of one intent kind.
type IntentMetrics struct {
	Name string

	DispatchCount uint64
	ErrorCount    uint64
	NoOpCount     uint64
	// ReplayCount counts dispatches made by macro playback or ".".
	ReplayCount uint64

	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    ResultStatus
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{
		kinds: make(map[intent.Kind]*IntentMetrics),
		modes: make(map[mode.Kind]uint64),
	}
}

// record adds one dispatch of kind from the given mode.
func (m *Metrics) record(kind intent.Kind, from mode.Kind, replayed bool, d time.Duration, status ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	im := m.kinds[kind]
	if im == nil {
		im = &IntentMetrics{Name: kind.String()}
		m.kinds[kind] = im
	}
	for _, c := range []*IntentMetrics{im, &m.total} {
		c.add(replayed, d, status)
	}
	m.modes[from]++
}

func (im *IntentMetrics) add(replayed bool, d time.Duration, status ResultStatus) {
	im.DispatchCount++
	im.TotalDuration += d
	im.MaxDuration = max(im.MaxDuration, d)
	im.LastStatus = status
	switch status {
	case StatusError:
		im.ErrorCount++
	case StatusNoOp:
		im.NoOpCount++
	}
	if replayed {
		im.ReplayCount++
	}
}

func (m *Metrics) recordPanic() {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// IntentStats returns a copy of the counters of the named kind, or nil if
// it was never dispatched.
func (m *Metrics) IntentStats(name string) *IntentMetrics {
	for _, k := range intent.Kinds() {
		if k.String() == name {
			return m.Stats(k)
		}
	}
	return nil
}

// Stats returns a copy of the counters of kind, or nil.
func (m *Metrics) Stats(kind intent.Kind) *IntentMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	im := m.kinds[kind]
	if im == nil {
		return nil
	}
	c := *im
	return &c
}

// ModeCount returns how many intents were dispatched while in k.
func (m *Metrics) ModeCount(k mode.Kind) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[k]
}

// TopIntents returns the n most dispatched kinds, ties broken by name.
func (m *Metrics) TopIntents(n int) []*IntentMetrics {
	m.mu.RLock()
	out := make([]*IntentMetrics, 0, len(m.kinds))
	for _, im := range m.kinds {
		c := *im
		out = append(out, &c)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b *IntentMetrics) int {
		if c := cmp.Compare(b.DispatchCount, a.DispatchCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out[:min(n, len(out))]
}

// Reset clears every counter.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.kinds)
	clear(m.modes)
	m.total = IntentMetrics{}
	m.panics = 0
}

// MetricsSnapshot is a copy of the totals.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalNoOps      uint64
	TotalReplays    uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	KindCount       int
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		TotalDispatches: m.total.DispatchCount,
		TotalErrors:     m.total.ErrorCount,
		TotalNoOps:      m.total.NoOpCount,
		TotalReplays:    m.total.ReplayCount,
		TotalPanics:     m.panics,
		TotalDuration:   m.total.TotalDuration,
		AverageDuration: m.total.AverageDuration(),
		KindCount:       len(m.kinds),
	}
}

// AverageDuration is TotalDuration over DispatchCount.
func (im *IntentMetrics) AverageDuration() time.Duration {
	if im.DispatchCount == 0 {
		return 0
	}
	return im.TotalDuration / time.Duration(im.DispatchCount)
}

// ErrorRate is the fraction of dispatches that failed, from 0 to 1.
func (im *IntentMetrics) ErrorRate() float64 {
	if im.DispatchCount == 0 {
		return 0
	}
	return float64(im.ErrorCount) / float64(im.DispatchCount)
}
