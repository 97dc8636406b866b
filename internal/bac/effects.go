package bac

// Tier is a discrete impairment classification bucket.
type Tier string

const (
	TierSober    Tier = "Sober"
	TierMild     Tier = "Mild Impairment"
	TierModerate Tier = "Moderate Impairment"
	TierHigh     Tier = "High Impairment"
	TierSevere   Tier = "Severe Impairment"
)

// EffectBand maps a half-open BAC interval [Min, next band's Min) to display
// guidance. Color is a hint for rendering collaborators.
type EffectBand struct {
	Min            float64
	Tier           Tier
	Effects        string
	Recommendation string
	Color          string
}

// DefaultEffectBands returns the display classification table, ordered by
// ascending Min. These boundaries are calibrated for display text and are
// intentionally not the alerting thresholds.
func DefaultEffectBands() []EffectBand {
	return []EffectBand{
		{Min: 0.00, Tier: TierSober, Effects: "No significant effects", Recommendation: "Safe to drive", Color: "green"},
		{Min: 0.02, Tier: TierMild, Effects: "Slight euphoria, relaxation, decreased inhibition", Recommendation: "Exercise caution", Color: "yellow"},
		{Min: 0.05, Tier: TierModerate, Effects: "Impaired judgment, reduced coordination, slower reaction time", Recommendation: "Do not drive", Color: "orange"},
		{Min: 0.08, Tier: TierHigh, Effects: "Significant impairment, poor coordination, slurred speech", Recommendation: "Do not drive, seek safe transportation", Color: "red"},
		{Min: 0.15, Tier: TierSevere, Effects: "Severe impairment, risk of alcohol poisoning", Recommendation: "Seek medical attention if needed", Color: "darkred"},
	}
}

// EffectClassifier maps a scalar BAC value onto the band table and estimates
// time to sobriety. Pure; owns an immutable copy of its bands.
type EffectClassifier struct {
	bands           []EffectBand
	eliminationRate float64
}

// NewEffectClassifier builds a classifier over the given bands. Empty bands
// or a non-positive elimination rate fall back to defaults.
func NewEffectClassifier(bands []EffectBand, eliminationRatePerHour float64) *EffectClassifier {
	if len(bands) == 0 {
		bands = DefaultEffectBands()
	}
	if eliminationRatePerHour <= 0 {
		eliminationRatePerHour = DefaultWidmarkConfig().EliminationRatePerHour
	}
	owned := make([]EffectBand, len(bands))
	copy(owned, bands)
	return &EffectClassifier{bands: owned, eliminationRate: eliminationRatePerHour}
}

// Classify returns the band whose half-open interval contains bac. Values
// below the first band's Min (including negatives) classify as the first
// band.
func (c *EffectClassifier) Classify(bac float64) EffectBand {
	band := c.bands[0]
	for _, b := range c.bands[1:] {
		if bac < b.Min {
			break
		}
		band = b
	}
	return band
}

// SoberHours estimates hours until BAC reaches zero at the elimination rate.
// Non-positive BAC yields 0.
func (c *EffectClassifier) SoberHours(bac float64) float64 {
	if bac <= 0 {
		return 0
	}
	return bac / c.eliminationRate
}

// Bands returns a copy of the classification table, for metadata listings.
func (c *EffectClassifier) Bands() []EffectBand {
	out := make([]EffectBand, len(c.bands))
	copy(out, c.bands)
	return out
}
