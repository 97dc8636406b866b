package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/monitor"
)

// DrinkHandler handles drink log endpoints.
type DrinkHandler struct {
	registry *monitor.Registry
}

// NewDrinkHandler creates a new DrinkHandler.
func NewDrinkHandler(registry *monitor.Registry) *DrinkHandler {
	return &DrinkHandler{registry: registry}
}

// AddDrink handles POST /v1/sessions/{sessionId}/drinks - log a drink and
// recompute the estimate.
func (h *DrinkHandler) AddDrink(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	var input models.DrinkRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := validateStruct(input); errs != nil {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	overrides, errs := drinkOverrides(input)
	if errs != nil {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	drink, err := session.AddDrink(input.Type, overrides)
	if err != nil {
		if errors.Is(err, bac.ErrInvalidVolume) || errors.Is(err, bac.ErrInvalidPercent) {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		response.InternalError(w, r, "failed to log drink")
		return
	}

	response.Created(w, r, "", models.AddDrinkResponse{
		Drink: toDrinkModel(drink),
		Bac:   session.Status().Bac,
	})
}

// ListDrinks handles GET /v1/sessions/{sessionId}/drinks - the drink log.
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOr404(w, r, h.registry)
	if !ok {
		return
	}

	drinks := session.Drinks()
	items := make([]models.Drink, 0, len(drinks))
	for _, drink := range drinks {
		items = append(items, toDrinkModel(drink))
	}
	response.JSON(w, r, http.StatusOK, models.DrinkList{Items: items})
}

// drinkOverrides converts optional serving overrides, rejecting values the
// catalog would otherwise silently ignore.
func drinkOverrides(input models.DrinkRequest) (bac.DrinkOverrides, []models.FieldError) {
	var errs []models.FieldError
	var overrides bac.DrinkOverrides

	if input.VolumeOz != nil {
		if *input.VolumeOz <= 0 {
			errs = append(errs, models.FieldError{Field: "volumeOz", Message: "must be greater than zero"})
		} else {
			overrides.VolumeOz = *input.VolumeOz
		}
	}
	if input.AlcoholPercent != nil {
		if *input.AlcoholPercent <= 0 || *input.AlcoholPercent > 100 {
			errs = append(errs, models.FieldError{Field: "alcoholPercent", Message: "must be greater than zero and at most 100"})
		} else {
			overrides.AlcoholPercent = *input.AlcoholPercent
		}
	}

	return overrides, errs
}

// toDrinkModel converts a drink record to its API representation.
func toDrinkModel(d bac.Drink) models.Drink {
	return models.Drink{
		ID:             d.ID,
		Type:           d.Type,
		VolumeOz:       d.VolumeOz,
		AlcoholPercent: d.AlcoholPercent,
		AlcoholGrams:   bac.EthanolGrams(d.VolumeOz, d.AlcoholPercent),
		ConsumedAt:     models.Timestamp(d.ConsumedAt),
	}
}
