// Package featureflags provides feature flag management for runtime
// configuration.
package featureflags

import (
	"time"
)

// Well-known feature flag keys.
const (
	// FlagEnableTimeShift exposes the clock-shift endpoint that simulates
	// elapsed time on a session.
	FlagEnableTimeShift = "enable_time_shift"

	// FlagDisableAlertDelivery suppresses alert dispatch while leaving
	// evaluation and metrics intact.
	FlagDisableAlertDelivery = "disable_alert_delivery"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil, not found, or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// DefaultFlags returns the default feature flags for the application.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagEnableTimeShift: {
			Key:       FlagEnableTimeShift,
			Value:     true,
			UpdatedAt: now,
		},
		FlagDisableAlertDelivery: {
			Key:       FlagDisableAlertDelivery,
			Value:     false,
			UpdatedAt: now,
		},
	}
}
