package alert

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCooldown is the default suppression window for repeat alerts at an
// unchanged level.
const DefaultCooldown = 30 * time.Second

// Thresholds holds the inclusive lower BAC bound of each alerting level.
type Thresholds struct {
	// Warning threshold. Default: 0.05.
	Warning float64

	// Danger threshold. Default: 0.08.
	Danger float64

	// Critical threshold. Default: 0.15.
	Critical float64
}

// DefaultThresholds returns the standard alerting thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Warning:  0.05,
		Danger:   0.08,
		Critical: 0.15,
	}
}

// Classify maps a BAC value to its alerting level.
func (t Thresholds) Classify(bac float64) Level {
	switch {
	case bac >= t.Critical:
		return LevelCritical
	case bac >= t.Danger:
		return LevelDanger
	case bac >= t.Warning:
		return LevelWarning
	default:
		return LevelNone
	}
}

// ThrottleConfig configures the alert throttle.
type ThrottleConfig struct {
	// Thresholds for level classification. Zero fields use defaults.
	Thresholds Thresholds

	// Cooldown suppresses repeat alerts while the level is unchanged. A zero
	// cooldown re-alerts on every evaluation; use DefaultThrottleConfig for
	// the standard 30 seconds.
	Cooldown time.Duration
}

// DefaultThrottleConfig returns the standard throttle configuration.
func DefaultThrottleConfig() ThrottleConfig {
	return ThrottleConfig{
		Thresholds: DefaultThresholds(),
		Cooldown:   DefaultCooldown,
	}
}

// Throttle decides, per evaluation, whether an alert fires. It suppresses
// repeats within the cooldown while guaranteeing every level transition
// (including the all-clear back to none) is surfaced immediately.
//
// Not safe for concurrent use; the session lock serializes callers.
type Throttle struct {
	config      ThrottleConfig
	lastLevel   Level
	lastFiredAt time.Time
}

// NewThrottle creates a throttle. Zero threshold fields use defaults; the
// cooldown is taken as given, since zero is a meaningful value.
func NewThrottle(config ThrottleConfig) *Throttle {
	if config.Thresholds == (Thresholds{}) {
		config.Thresholds = DefaultThresholds()
	}
	if config.Cooldown < 0 {
		config.Cooldown = 0
	}
	return &Throttle{
		config:    config,
		lastLevel: LevelNone,
	}
}

// Evaluate classifies bac and decides whether an alert fires at now. Firing
// updates the level and timestamp state; suppressed evaluations leave state
// untouched.
func (t *Throttle) Evaluate(bac float64, now time.Time) (Event, bool) {
	level := t.config.Thresholds.Classify(bac)

	levelChanged := level != t.lastLevel
	cooldownExpired := t.lastFiredAt.IsZero() || now.Sub(t.lastFiredAt) > t.config.Cooldown

	fire := levelChanged || (level != LevelNone && cooldownExpired)
	if !fire {
		return Event{}, false
	}

	t.lastLevel = level
	t.lastFiredAt = now

	return Event{
		ID:      "alr_" + uuid.New().String()[:22],
		Level:   level,
		Bac:     bac,
		FiredAt: now,
	}, true
}

// Peek classifies bac without touching throttle state. Manual alert checks
// use this so they never consume a scheduled alert.
func (t *Throttle) Peek(bac float64) Level {
	return t.config.Thresholds.Classify(bac)
}

// SetCooldown replaces the suppression window. Negative values clamp to zero
// (re-alert on every evaluation).
func (t *Throttle) SetCooldown(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.config.Cooldown = d
}

// Cooldown returns the current suppression window.
func (t *Throttle) Cooldown() time.Duration {
	return t.config.Cooldown
}

// LastLevel returns the level recorded by the most recent fired evaluation.
func (t *Throttle) LastLevel() Level {
	return t.lastLevel
}

// Reset clears the throttle back to its initial state.
func (t *Throttle) Reset() {
	t.lastLevel = LevelNone
	t.lastFiredAt = time.Time{}
}
