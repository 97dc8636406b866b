package monitor

import (
	"sync"
	"time"
)

// Metrics tracks monitoring loop statistics across all sessions.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	TotalTicks   int64
	FailedTicks  int64
	AlertsFired  int64
	DrinksLogged int64

	// Timings
	LastTickAt       time.Time
	LastTickDuration time.Duration
	TotalDuration    time.Duration
}

// RecordTick accounts one completed tick.
func (m *Metrics) RecordTick(at time.Time, duration time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalTicks++
	if failed {
		m.FailedTicks++
	}
	m.LastTickAt = at
	m.LastTickDuration = duration
	m.TotalDuration += duration
}

// RecordAlert accounts one fired alert.
func (m *Metrics) RecordAlert() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AlertsFired++
}

// RecordDrink accounts one logged drink.
func (m *Metrics) RecordDrink() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DrinksLogged++
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() Metrics {
	if m == nil {
		return Metrics{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Metrics{
		TotalTicks:       m.TotalTicks,
		FailedTicks:      m.FailedTicks,
		AlertsFired:      m.AlertsFired,
		DrinksLogged:     m.DrinksLogged,
		LastTickAt:       m.LastTickAt,
		LastTickDuration: m.LastTickDuration,
		TotalDuration:    m.TotalDuration,
	}
}

// SnapshotMap returns the metrics as a map for ops endpoints.
func (m *Metrics) SnapshotMap() map[string]interface{} {
	s := m.Snapshot()
	return map[string]interface{}{
		"total_ticks":        s.TotalTicks,
		"failed_ticks":       s.FailedTicks,
		"alerts_fired":       s.AlertsFired,
		"drinks_logged":      s.DrinksLogged,
		"last_tick_at":       s.LastTickAt,
		"last_tick_duration": s.LastTickDuration.String(),
		"total_duration":     s.TotalDuration.String(),
	}
}
