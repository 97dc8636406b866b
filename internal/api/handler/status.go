package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/monitor"
	"github.com/bacmon/bacmon/internal/sensor"
)

// defaultHistoryWindowMinutes is the history window when the query parameter
// is absent.
const defaultHistoryWindowMinutes = 10.0

// StatusHandler handles session status and history endpoints.
type StatusHandler struct {
	registry *monitor.Registry
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(registry *monitor.Registry) *StatusHandler {
	return &StatusHandler{registry: registry}
}

// GetStatus handles GET /v1/sessions/{sessionId}/status - the current
// estimate and classification.
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, toStatusModel(session.Status()))
}

// GetHistory handles GET /v1/sessions/{sessionId}/history - recent samples.
// The windowMinutes query parameter bounds the window (default 10).
func (h *StatusHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	windowMinutes := defaultHistoryWindowMinutes
	if raw := r.URL.Query().Get("windowMinutes"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, r, "windowMinutes must be a positive number", nil)
			return
		}
		windowMinutes = parsed
	}

	samples := session.RecentData(time.Duration(windowMinutes * float64(time.Minute)))
	items := make([]models.HistorySample, 0, len(samples))
	for _, sample := range samples {
		items = append(items, models.HistorySample{
			At:      models.Timestamp(sample.At),
			Bac:     sample.Bac,
			Sensors: toSensorModel(sample.Sensors),
		})
	}

	response.JSON(w, r, http.StatusOK, models.History{
		Items:         items,
		WindowMinutes: windowMinutes,
	})
}

// toStatusModel converts a status snapshot to its API representation.
func toStatusModel(st monitor.Status) models.SessionStatus {
	return models.SessionStatus{
		SessionID:             st.SessionID,
		Running:               st.Running,
		Bac:                   st.Bac,
		Tier:                  string(st.Tier),
		Effects:               st.Effects,
		Recommendation:        st.Recommendation,
		Color:                 st.Color,
		SoberInHours:          st.SoberHours,
		Sensors:               toSensorModel(st.Sensors),
		DrinkCount:            st.DrinkCount,
		MinutesSinceLastDrink: st.MinutesSinceLastDrink,
		UpdatedAt:             models.Timestamp(st.UpdatedAt),
	}
}

// toSensorModel converts a sensor snapshot to its API representation.
func toSensorModel(s sensor.Snapshot) models.SensorReading {
	return models.SensorReading{
		HeartRate:       s.HeartRate,
		SkinConductance: s.SkinConductance,
		Temperature:     s.Temperature,
	}
}
