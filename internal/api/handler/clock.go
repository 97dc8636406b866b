package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/featureflags"
	"github.com/bacmon/bacmon/internal/monitor"
)

// ClockHandler handles the simulated-time endpoint.
type ClockHandler struct {
	registry *monitor.Registry
	flags    *featureflags.Service
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(registry *monitor.Registry, flags *featureflags.Service) *ClockHandler {
	return &ClockHandler{registry: registry, flags: flags}
}

// ShiftClock handles POST /v1/sessions/{sessionId}/clock/shift - move the
// absorption origin backward to simulate elapsed time. The endpoint is
// hidden behind the enable_time_shift flag and answers 404 when disabled.
func (h *ClockHandler) ShiftClock(w http.ResponseWriter, r *http.Request) {
	if !h.flags.IsTimeShiftEnabled(r.Context()) {
		response.NotFound(w, r, "not found")
		return
	}

	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	var input models.ClockShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := validateStruct(input); errs != nil {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	session.ShiftClock(time.Duration(input.Hours * float64(time.Hour)))

	response.JSON(w, r, http.StatusOK, models.ClockShiftResponse{
		SessionID:    session.ID(),
		ShiftedHours: input.Hours,
		Bac:          session.Status().Bac,
	})
}
