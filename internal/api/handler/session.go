package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/monitor"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	registry *monitor.Registry
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry *monitor.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// CreateSession handles POST /v1/sessions - register a monitoring session.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input models.SessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := validateStruct(input); errs != nil {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	sex, err := bac.ParseSex(input.Sex)
	if err != nil {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "sex", Message: "must be male or female"},
		})
		return
	}

	session, err := h.registry.Create(bac.Profile{WeightLbs: input.WeightLbs, Sex: sex})
	if err != nil {
		if errors.Is(err, bac.ErrInvalidWeight) || errors.Is(err, bac.ErrInvalidSex) {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		response.InternalError(w, r, "failed to create session")
		return
	}

	location := fmt.Sprintf("/v1/sessions/%s", session.ID())
	response.Created(w, r, location, toSessionModel(session))
}

// ListSessions handles GET /v1/sessions - list registered sessions.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.registry.List()
	items := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, toSessionModel(session))
	}
	response.JSON(w, r, http.StatusOK, models.SessionList{Items: items})
}

// GetSession handles GET /v1/sessions/{sessionId} - fetch one session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionOr404(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, toSessionModel(session))
}

// DeleteSession handles DELETE /v1/sessions/{sessionId} - remove a session
// and stop its monitoring loop.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if err := h.registry.Delete(sessionID); err != nil {
		response.NotFound(w, r, fmt.Sprintf("session %s not found", sessionID))
		return
	}
	response.NoContent(w, r)
}

// StartSession handles POST /v1/sessions/{sessionId}/start - begin the
// monitoring loop. Idempotent.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionOr404(w, r)
	if !ok {
		return
	}
	session.Start()
	response.JSON(w, r, http.StatusOK, toSessionModel(session))
}

// StopSession handles POST /v1/sessions/{sessionId}/stop - halt the
// monitoring loop. Idempotent.
func (h *SessionHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionOr404(w, r)
	if !ok {
		return
	}
	session.Stop()
	response.JSON(w, r, http.StatusOK, toSessionModel(session))
}

// ResetSession handles POST /v1/sessions/{sessionId}/reset - clear drinks,
// history, and alert state while keeping the profile and baseline.
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionOr404(w, r)
	if !ok {
		return
	}
	session.Reset()
	response.JSON(w, r, http.StatusOK, toStatusModel(session.Status()))
}

// sessionOr404 resolves the sessionId path parameter, writing a 404 problem
// when no such session is registered.
func (h *SessionHandler) sessionOr404(w http.ResponseWriter, r *http.Request) (*monitor.Session, bool) {
	return sessionOr404(w, r, h.registry)
}

func sessionOr404(w http.ResponseWriter, r *http.Request, registry *monitor.Registry) (*monitor.Session, bool) {
	sessionID := chi.URLParam(r, "sessionId")
	session, err := registry.Get(sessionID)
	if err != nil {
		response.NotFound(w, r, fmt.Sprintf("session %s not found", sessionID))
		return nil, false
	}
	return session, true
}

// toSessionModel converts a session to its API representation.
func toSessionModel(s *monitor.Session) models.Session {
	profile := s.Profile()
	return models.Session{
		ID:        s.ID(),
		WeightLbs: profile.WeightLbs,
		Sex:       string(profile.Sex),
		Running:   s.Running(),
		CreatedAt: models.Timestamp(s.CreatedAt()),
	}
}
