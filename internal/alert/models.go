// Package alert implements the threshold alerting state machine and the
// notification dispatch contract around it.
package alert

import "time"

// Level is an alerting severity derived from the alert threshold table.
// Alerting thresholds are tuned for escalation and are intentionally distinct
// from the display classifier's band boundaries.
type Level string

const (
	// LevelNone means the BAC sits below every alerting threshold.
	LevelNone     Level = "none"
	LevelWarning  Level = "warning"
	LevelDanger   Level = "danger"
	LevelCritical Level = "critical"
)

// Severity orders levels for comparisons; higher is worse.
func (l Level) Severity() int {
	switch l {
	case LevelWarning:
		return 1
	case LevelDanger:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// Event is a fired alert. A LevelNone event signals the all-clear transition
// out of alerting territory.
type Event struct {
	// ID uniquely identifies the event.
	ID string

	// Level is the alerting severity at evaluation time.
	Level Level

	// Bac is the BAC value that produced the event.
	Bac float64

	// Message is display text composed by the monitor (BAC plus guidance).
	Message string

	// FiredAt is the evaluation timestamp.
	FiredAt time.Time
}
