package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/featureflags"
)

// FeatureFlagsHandler handles feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service}
}

// ListFeatureFlags handles GET /v1/flags - list all feature flags.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	flags := h.service.GetAllFlags(r.Context())

	keys := make([]string, 0, len(flags))
	for key := range flags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]featureflags.Flag, 0, len(keys))
	for _, key := range keys {
		items = append(items, *flags[key])
	}
	response.JSON(w, r, http.StatusOK, featureflags.FlagList{Items: items})
}

// UpsertFeatureFlags handles PUT /v1/flags - update feature flags.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var input featureflags.FlagUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if len(input.Updates) == 0 {
		response.BadRequest(w, r, "updates must not be empty", nil)
		return
	}

	flags := make([]*featureflags.Flag, 0, len(input.Updates))
	for _, update := range input.Updates {
		if update.Key == "" {
			response.BadRequest(w, r, "update key must not be empty", nil)
			return
		}
		flags = append(flags, &featureflags.Flag{Key: update.Key, Value: update.Value})
	}

	if err := h.service.SetFlags(r.Context(), flags); err != nil {
		response.InternalError(w, r, "failed to update feature flags")
		return
	}

	items := make([]featureflags.Flag, 0, len(flags))
	for _, flag := range flags {
		items = append(items, *flag)
	}
	response.JSON(w, r, http.StatusOK, featureflags.FlagList{Items: items})
}

// InvalidateCache handles POST /v1/flags/invalidate - invalidate flag cache.
func (h *FeatureFlagsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	response.NoContent(w, r)
}
