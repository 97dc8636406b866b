package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacmon/bacmon/internal/api"
	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/featureflags"
	"github.com/bacmon/bacmon/internal/monitor"
)

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	metrics := &monitor.Metrics{}

	registry := monitor.NewRegistry(monitor.RegistryConfig{
		Logger:  logger,
		Metrics: metrics,
	})

	flagService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewInMemoryRepository(),
		Logger:     logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:            "test",
		BuildTime:          "2025-01-01T00:00:00Z",
		Logger:             logger,
		Registry:           registry,
		MonitorMetrics:     metrics,
		FeatureFlagService: flagService,
	})
}

// createTestSession registers a session through the API and returns its ID.
func createTestSession(t *testing.T, router http.Handler, weightLbs float64, sex string) string {
	t.Helper()

	body, err := json.Marshal(models.SessionCreateRequest{WeightLbs: weightLbs, Sex: sex})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var session models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.ID)
	return session.ID
}

// addTestDrink logs a drink through the API.
func addTestDrink(t *testing.T, router http.Handler, sessionID string, input models.DrinkRequest) models.AddDrinkResponse {
	t.Helper()

	body, err := json.Marshal(input)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/sessions/%s/drinks", sessionID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AddDrinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// shiftTestClock simulates elapsed time through the API.
func shiftTestClock(t *testing.T, router http.Handler, sessionID string, hours float64) models.ClockShiftResponse {
	t.Helper()

	body, err := json.Marshal(models.ClockShiftRequest{Hours: hours})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/sessions/%s/clock/shift", sessionID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ClockShiftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// getTestStatus fetches the session status through the API.
func getTestStatus(t *testing.T, router http.Handler, sessionID string) models.SessionStatus {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/sessions/%s/status", sessionID), http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var status models.SessionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	return status
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.NotEmpty(t, status.Subsystems)
	assert.Contains(t, status.Monitor, "sessions")
	assert.Contains(t, status.Monitor, "total_ticks")
	assert.Contains(t, status.ActiveFlags, featureflags.FlagEnableTimeShift)
}

func TestRouter_GetDrinkCatalog(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/metadata/drinks", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var catalog models.DrinkCatalog
	err := json.Unmarshal(w.Body.Bytes(), &catalog)
	require.NoError(t, err)

	require.Len(t, catalog.Items, 4)
	byType := make(map[string]models.DrinkSpec, len(catalog.Items))
	for _, item := range catalog.Items {
		byType[item.Type] = item
	}
	assert.Equal(t, 12.0, byType["beer"].VolumeOz)
	assert.Equal(t, 5.0, byType["beer"].AlcoholPercent)
	assert.Equal(t, 1.5, byType["liquor"].VolumeOz)
	assert.Equal(t, 40.0, byType["liquor"].AlcoholPercent)

	assert.Equal(t, 12.0, catalog.Default.VolumeOz)
	assert.Equal(t, 5.0, catalog.Default.AlcoholPercent)
}

func TestRouter_GetEnums(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/metadata/enums", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var enums models.Enums
	err := json.Unmarshal(w.Body.Bytes(), &enums)
	require.NoError(t, err)

	assert.Contains(t, enums.Sexes, "male")
	assert.Contains(t, enums.Sexes, "female")
	assert.Contains(t, enums.Tiers, "Sober")
	assert.Contains(t, enums.Tiers, "Severe Impairment")
	assert.Contains(t, enums.AlertLevels, "warning")
	assert.Contains(t, enums.AlertLevels, "critical")
	require.Len(t, enums.EffectBands, 5)
	assert.Equal(t, 0.08, enums.EffectBands[3].MinBac)
	assert.Equal(t, "red", enums.EffectBands[3].Color)
}

func TestRouter_CreateSession(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.SessionCreateRequest{WeightLbs: 160, Sex: "male"})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))

	var session models.Session
	err := json.Unmarshal(w.Body.Bytes(), &session)
	require.NoError(t, err)

	assert.Contains(t, session.ID, "ses_")
	assert.Equal(t, 160.0, session.WeightLbs)
	assert.Equal(t, "male", session.Sex)
	assert.False(t, session.Running)
	assert.Equal(t, "/v1/sessions/"+session.ID, w.Header().Get("Location"))
}

func TestRouter_CreateSession_MissingWeight(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"sex": "male"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.TraceID)
	assert.NotEmpty(t, problem.Errors)
}

func TestRouter_CreateSession_InvalidSex(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.SessionCreateRequest{WeightLbs: 160, Sex: "robot"})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "sex", problem.Errors[0].Field)
}

func TestRouter_GetSession_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/ses_missing", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_ListSessions(t *testing.T) {
	router := newTestRouter()

	first := createTestSession(t, router, 160, "male")
	second := createTestSession(t, router, 120, "female")

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.SessionList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	ids := []string{list.Items[0].ID, list.Items[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}

func TestRouter_DeleteSession(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+sessionID, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID, http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_StartStopSession(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/start", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var session models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.True(t, session.Running)

	req = httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/stop", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.False(t, session.Running)
}

func TestRouter_AddDrink(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	resp := addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "beer"})

	assert.Contains(t, resp.Drink.ID, "drk_")
	assert.Equal(t, "beer", resp.Drink.Type)
	assert.Equal(t, 12.0, resp.Drink.VolumeOz)
	assert.Equal(t, 5.0, resp.Drink.AlcoholPercent)
	assert.InDelta(t, 14.0001, resp.Drink.AlcoholGrams, 0.001)
	// No time has elapsed, so absorption has not started.
	assert.InDelta(t, 0.0, resp.Bac, 0.0005)
}

func TestRouter_AddDrink_Overrides(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	resp := addTestDrink(t, router, sessionID, models.DrinkRequest{
		Type:     "wine",
		VolumeOz: floatPtr(6.0),
	})

	assert.Equal(t, "wine", resp.Drink.Type)
	assert.Equal(t, 6.0, resp.Drink.VolumeOz)
	assert.Equal(t, 12.0, resp.Drink.AlcoholPercent)
}

func TestRouter_AddDrink_InvalidOverride(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	body, _ := json.Marshal(models.DrinkRequest{Type: "beer", VolumeOz: floatPtr(-1.0)})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/drinks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "volumeOz", problem.Errors[0].Field)
}

func TestRouter_AddDrink_MissingType(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/drinks", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ListDrinks(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "beer"})
	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "liquor"})

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/drinks", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.DrinkList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "beer", list.Items[0].Type)
	assert.Equal(t, "liquor", list.Items[1].Type)
}

func TestRouter_ClockShiftAndStatus(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	for i := 0; i < 3; i++ {
		addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "beer"})
	}

	shift := shiftTestClock(t, router, sessionID, 1.5)
	assert.Equal(t, sessionID, shift.SessionID)
	assert.Equal(t, 1.5, shift.ShiftedHours)
	assert.InDelta(t, 0.0491, shift.Bac, 0.0005)

	status := getTestStatus(t, router, sessionID)
	assert.Equal(t, sessionID, status.SessionID)
	assert.InDelta(t, 0.0491, status.Bac, 0.0005)
	assert.Equal(t, "Mild Impairment", status.Tier)
	assert.Equal(t, "Exercise caution", status.Recommendation)
	assert.Equal(t, "yellow", status.Color)
	assert.Equal(t, 3, status.DrinkCount)
	assert.Greater(t, status.SoberInHours, 0.0)
}

func TestRouter_ClockShift_FlagDisabled(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")
	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "beer"})

	// Disable the time-shift flag through the flags API.
	update := featureflags.FlagUpdateRequest{
		Updates: []featureflags.FlagUpdate{
			{Key: featureflags.FlagEnableTimeShift, Value: false},
		},
		Reason: "testing gate",
	}
	body, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPut, "/v1/flags", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The clock-shift endpoint now answers 404.
	body, _ = json.Marshal(models.ClockShiftRequest{Hours: 1.0})
	req = httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/clock/shift", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AlertCheck_Warning(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 120, "female")

	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "liquor"})
	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "liquor"})
	shiftTestClock(t, router, sessionID, 0.5)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/alerts/check", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var check models.AlertCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))

	assert.True(t, check.Active)
	assert.Equal(t, "warning", check.Level)
	assert.InDelta(t, 0.0655, check.Bac, 0.0005)
	assert.Equal(t, "BAC: 0.065 - Do not drive", check.Message)
}

func TestRouter_AlertCheck_Sober(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/alerts/check", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var check models.AlertCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))

	assert.False(t, check.Active)
	assert.Equal(t, "none", check.Level)
	assert.Zero(t, check.Bac)
	assert.Empty(t, check.Message)
}

func TestRouter_SetCooldown(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	body, _ := json.Marshal(models.CooldownRequest{Seconds: 60})
	req := httptest.NewRequest(http.MethodPut, "/v1/sessions/"+sessionID+"/alerts/cooldown", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CooldownResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sessionID, resp.SessionID)
	assert.Equal(t, 60.0, resp.Seconds)
}

func TestRouter_SetCooldown_Negative(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	body, _ := json.Marshal(models.CooldownRequest{Seconds: -5})
	req := httptest.NewRequest(http.MethodPut, "/v1/sessions/"+sessionID+"/alerts/cooldown", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ResetSession(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	addTestDrink(t, router, sessionID, models.DrinkRequest{Type: "beer"})
	shiftTestClock(t, router, sessionID, 1.0)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/reset", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SessionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Zero(t, status.Bac)
	assert.Zero(t, status.DrinkCount)
	assert.Equal(t, "Sober", status.Tier)
}

func TestRouter_GetHistory(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/history", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var history models.History
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Empty(t, history.Items)
	assert.Equal(t, 10.0, history.WindowMinutes)
}

func TestRouter_GetHistory_CustomWindow(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/history?windowMinutes=30", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var history models.History
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, 30.0, history.WindowMinutes)
}

func TestRouter_GetHistory_InvalidWindow(t *testing.T) {
	router := newTestRouter()
	sessionID := createTestSession(t, router, 160, "male")

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/history?windowMinutes=abc", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_FeatureFlags_ListAndInvalidate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/flags", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list featureflags.FlagList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, featureflags.FlagDisableAlertDelivery, list.Items[0].Key)
	assert.Equal(t, featureflags.FlagEnableTimeShift, list.Items[1].Key)

	req = httptest.NewRequest(http.MethodPost, "/v1/flags/invalidate", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_RequestID_Generated(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, requestID, "req_")
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
