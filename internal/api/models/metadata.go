package models

// DrinkSpec represents a drink catalog entry.
type DrinkSpec struct {
	Type           string  `json:"type"`
	VolumeOz       float64 `json:"volumeOz"`
	AlcoholPercent float64 `json:"alcoholPercent"`
}

// DrinkCatalog represents the built-in drink database. Default is the spec
// applied to drink types without a catalog entry.
type DrinkCatalog struct {
	Items   []DrinkSpec `json:"items"`
	Default DrinkSpec   `json:"default"`
}

// EffectBand represents one impairment classification band.
type EffectBand struct {
	MinBac         float64 `json:"minBac"`
	Tier           string  `json:"tier"`
	Effects        string  `json:"effects"`
	Recommendation string  `json:"recommendation"`
	Color          string  `json:"color"`
}

// Enums represents the enum values used by the API.
type Enums struct {
	Sexes       []string     `json:"sexes"`
	Tiers       []string     `json:"tiers"`
	AlertLevels []string     `json:"alertLevels"`
	EffectBands []EffectBand `json:"effectBands"`
}
