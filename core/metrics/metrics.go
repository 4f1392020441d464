// Package metrics provides the injected metrics collaborator.
// The core records observations through the Recorder interface; when metrics
// are disabled the Nop implementation makes every call free.
package metrics

import (
	"sync"
	"time"
)

// Recorder receives metric observations. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// RecordDuration records one elapsed-time observation for an operation.
	RecordDuration(operation string, d time.Duration)
	// IncCounter increments a named counter by one.
	IncCounter(name string)
}

// Nop is the recorder used when metrics are disabled.
type Nop struct{}

func (Nop) RecordDuration(string, time.Duration) {}
func (Nop) IncCounter(string)                    {}

// DurationStats summarizes the observations recorded for one operation.
type DurationStats struct {
	Count int           `json:"count"`
	Total time.Duration `json:"total"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
}

// Mean returns the average observed duration.
func (s DurationStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Registry is an in-memory Recorder.
type Registry struct {
	mu        sync.Mutex
	durations map[string]*DurationStats
	counters  map[string]int64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		durations: make(map[string]*DurationStats),
		counters:  make(map[string]int64),
	}
}

// RecordDuration records one elapsed-time observation.
func (r *Registry) RecordDuration(operation string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.durations[operation]
	if !ok {
		stats = &DurationStats{Min: d, Max: d}
		r.durations[operation] = stats
	}
	stats.Count++
	stats.Total += d
	if d < stats.Min {
		stats.Min = d
	}
	if d > stats.Max {
		stats.Max = d
	}
}

// IncCounter increments a named counter.
func (r *Registry) IncCounter(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name]++
}

// Snapshot returns copies of the current durations and counters.
func (r *Registry) Snapshot() (map[string]DurationStats, map[string]int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]DurationStats, len(r.durations))
	for op, stats := range r.durations {
		durations[op] = *stats
	}
	counters := make(map[string]int64, len(r.counters))
	for name, n := range r.counters {
		counters[name] = n
	}
	return durations, counters
}
