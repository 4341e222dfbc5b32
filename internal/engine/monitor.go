package engine

import (
	"sync"
	"time"
)

// TickStats summarises observed tick durations.
type TickStats struct {
	Samples int           `json:"samples"`
	Average time.Duration `json:"average_ns"`
	Max     time.Duration `json:"max_ns"`
	Last    time.Duration `json:"last_ns"`
	Dropped int           `json:"dropped"` // Ticks skipped by the catch-up cap
}

// AverageTPS derives the ticks-per-second equivalent of the average tick cost.
func (s TickStats) AverageTPS() float64 {
	if s.Average <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Average)
}

// TickMonitor accumulates timing statistics for the tick driver.
type TickMonitor struct {
	mu      sync.Mutex
	samples int
	total   time.Duration
	max     time.Duration
	last    time.Duration
	dropped int
}

// NewTickMonitor constructs an empty monitor.
func NewTickMonitor() *TickMonitor {
	return &TickMonitor{}
}

// Observe records the duration of a completed tick.
func (m *TickMonitor) Observe(d time.Duration) {
	if m == nil || d < 0 {
		return
	}
	m.mu.Lock()
	m.samples++
	m.total += d
	if d > m.max {
		m.max = d
	}
	m.last = d
	m.mu.Unlock()
}

// Drop records ticks discarded because the driver fell too far behind.
func (m *TickMonitor) Drop(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.mu.Lock()
	m.dropped += n
	m.mu.Unlock()
}

// Snapshot returns a copy of the aggregated statistics.
func (m *TickMonitor) Snapshot() TickStats {
	if m == nil {
		return TickStats{}
	}
	m.mu.Lock()
	s := TickStats{
		Samples: m.samples,
		Max:     m.max,
		Last:    m.last,
		Dropped: m.dropped,
	}
	total := m.total
	m.mu.Unlock()

	if s.Samples > 0 {
		s.Average = total / time.Duration(s.Samples)
	}
	return s
}

// Reset clears the accumulated statistics.
func (m *TickMonitor) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.samples = 0
	m.total = 0
	m.max = 0
	m.last = 0
	m.dropped = 0
	m.mu.Unlock()
}
