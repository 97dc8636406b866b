package models

// SessionCreateRequest is the request body for starting a monitoring session.
type SessionCreateRequest struct {
	WeightLbs float64 `json:"weightLbs" validate:"required"`
	Sex       string  `json:"sex" validate:"required"`
}

// Session represents a monitoring session.
type Session struct {
	ID        string    `json:"id"`
	WeightLbs float64   `json:"weightLbs"`
	Sex       string    `json:"sex"`
	Running   bool      `json:"running"`
	CreatedAt Timestamp `json:"createdAt"`
}

// SessionList represents the registered sessions, ordered by creation time.
type SessionList struct {
	Items []Session `json:"items"`
}

// SensorReading represents one wearable sensor snapshot.
type SensorReading struct {
	HeartRate       float64 `json:"heartRate"`
	SkinConductance float64 `json:"skinConductance"`
	Temperature     float64 `json:"temperature"`
}

// SessionStatus is the current estimate and classification for a session.
type SessionStatus struct {
	SessionID             string        `json:"sessionId"`
	Running               bool          `json:"running"`
	Bac                   float64       `json:"bac"`
	Tier                  string        `json:"tier"`
	Effects               string        `json:"effects"`
	Recommendation        string        `json:"recommendation"`
	Color                 string        `json:"color"`
	SoberInHours          float64       `json:"soberInHours"`
	Sensors               SensorReading `json:"sensors"`
	DrinkCount            int           `json:"drinkCount"`
	MinutesSinceLastDrink float64       `json:"minutesSinceLastDrink"`
	UpdatedAt             Timestamp     `json:"updatedAt"`
}

// DrinkRequest is the request body for logging a drink. VolumeOz and
// AlcoholPercent override the catalog serving when present.
type DrinkRequest struct {
	Type           string   `json:"type" validate:"required"`
	VolumeOz       *float64 `json:"volumeOz,omitempty"`
	AlcoholPercent *float64 `json:"alcoholPercent,omitempty"`
}

// Drink represents a logged drink.
type Drink struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	VolumeOz       float64   `json:"volumeOz"`
	AlcoholPercent float64   `json:"alcoholPercent"`
	AlcoholGrams   float64   `json:"alcoholGrams"`
	ConsumedAt     Timestamp `json:"consumedAt"`
}

// AddDrinkResponse is returned after a drink is logged, with the BAC
// recomputed at log time.
type AddDrinkResponse struct {
	Drink Drink   `json:"drink"`
	Bac   float64 `json:"bac"`
}

// DrinkList represents a session's drink log.
type DrinkList struct {
	Items []Drink `json:"items"`
}

// HistorySample is one recorded monitoring data point.
type HistorySample struct {
	At      Timestamp     `json:"at"`
	Bac     float64       `json:"bac"`
	Sensors SensorReading `json:"sensors"`
}

// History represents the recent monitoring window for a session.
type History struct {
	Items         []HistorySample `json:"items"`
	WindowMinutes float64         `json:"windowMinutes"`
}

// AlertCheck is the result of a manual alert threshold check.
type AlertCheck struct {
	Active    bool      `json:"active"`
	Level     string    `json:"level"`
	Bac       float64   `json:"bac"`
	Message   string    `json:"message,omitempty"`
	CheckedAt Timestamp `json:"checkedAt"`
}

// CooldownRequest is the request body for tuning the alert cooldown.
type CooldownRequest struct {
	Seconds float64 `json:"seconds" validate:"min:0"`
}

// CooldownResponse reports the effective alert cooldown.
type CooldownResponse struct {
	SessionID string  `json:"sessionId"`
	Seconds   float64 `json:"seconds"`
}

// ClockShiftRequest is the request body for simulating elapsed time.
type ClockShiftRequest struct {
	Hours float64 `json:"hours" validate:"required|min:0"`
}

// ClockShiftResponse reports the recomputed estimate after a clock shift.
type ClockShiftResponse struct {
	SessionID    string  `json:"sessionId"`
	ShiftedHours float64 `json:"shiftedHours"`
	Bac          float64 `json:"bac"`
}
