package handler

import (
	"net/http"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/api/models"
	"github.com/bacmon/bacmon/internal/api/response"
	"github.com/bacmon/bacmon/internal/bac"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	catalog    *bac.Catalog
	classifier *bac.EffectClassifier
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(catalog *bac.Catalog, classifier *bac.EffectClassifier) *MetadataHandler {
	return &MetadataHandler{catalog: catalog, classifier: classifier}
}

// GetDrinkCatalog handles GET /v1/metadata/drinks - the drink database.
func (h *MetadataHandler) GetDrinkCatalog(w http.ResponseWriter, r *http.Request) {
	types := h.catalog.Types()
	items := make([]models.DrinkSpec, 0, len(types))
	for _, drinkType := range types {
		spec := h.catalog.Spec(drinkType)
		items = append(items, models.DrinkSpec{
			Type:           drinkType,
			VolumeOz:       spec.VolumeOz,
			AlcoholPercent: spec.AlcoholPercent,
		})
	}

	fallback := h.catalog.Fallback()
	response.JSON(w, r, http.StatusOK, models.DrinkCatalog{
		Items: items,
		Default: models.DrinkSpec{
			Type:           "default",
			VolumeOz:       fallback.VolumeOz,
			AlcoholPercent: fallback.AlcoholPercent,
		},
	})
}

// GetEnums handles GET /v1/metadata/enums - enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	bands := h.classifier.Bands()
	tiers := make([]string, 0, len(bands))
	effectBands := make([]models.EffectBand, 0, len(bands))
	for _, band := range bands {
		tiers = append(tiers, string(band.Tier))
		effectBands = append(effectBands, models.EffectBand{
			MinBac:         band.Min,
			Tier:           string(band.Tier),
			Effects:        band.Effects,
			Recommendation: band.Recommendation,
			Color:          band.Color,
		})
	}

	enums := models.Enums{
		Sexes: []string{string(bac.SexMale), string(bac.SexFemale)},
		Tiers: tiers,
		AlertLevels: []string{
			string(alert.LevelNone),
			string(alert.LevelWarning),
			string(alert.LevelDanger),
			string(alert.LevelCritical),
		},
		EffectBands: effectBands,
	}
	response.JSON(w, r, http.StatusOK, enums)
}
