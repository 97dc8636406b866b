package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/monitor"
)

// AlertsHandler handles alert check and cooldown endpoints.
type AlertsHandler struct {
	registry *monitor.Registry
}

// NewAlertsHandler creates a new AlertsHandler.
func NewAlertsHandler(registry *monitor.Registry) *AlertsHandler {
	return &AlertsHandler{registry: registry}
}

// CheckAlerts handles POST /v1/sessions/{sessionId}/alerts/check - classify
// the current BAC against the alert thresholds. The check is read-only:
// it never consumes a scheduled alert.
func (h *AlertsHandler) CheckAlerts(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	event, active := session.CheckAlerts()
	check := models.AlertCheck{Active: active}
	if active {
		check.Level = string(event.Level)
		check.Bac = event.Bac
		check.Message = event.Message
		check.CheckedAt = models.Timestamp(event.FiredAt)
	} else {
		status := session.Status()
		check.Level = string(alert.LevelNone)
		check.Bac = status.Bac
		check.CheckedAt = models.Timestamp(time.Now())
	}

	response.JSON(w, r, http.StatusOK, check)
}

// SetCooldown handles PUT /v1/sessions/{sessionId}/alerts/cooldown - tune
// the alert suppression window. Zero disables suppression.
func (h *AlertsHandler) SetCooldown(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	var input models.CooldownRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := validateStruct(input); errs != nil {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	session.SetAlertCooldown(time.Duration(input.Seconds * float64(time.Second)))

	response.JSON(w, r, http.StatusOK, models.CooldownResponse{
		SessionID: session.ID(),
		Seconds:   session.AlertCooldown().Seconds(),
	})
}
