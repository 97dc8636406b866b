package bac

import "math"

// WidmarkConfig holds the constants of the two-phase Widmark model.
type WidmarkConfig struct {
	// MaleDistributionRatio is the body-water distribution ratio applied to
	// male profiles. Default: 0.68.
	MaleDistributionRatio float64

	// FemaleDistributionRatio is the ratio applied to female profiles.
	// Default: 0.55.
	FemaleDistributionRatio float64

	// EliminationRatePerHour is the linear BAC decline after peak absorption,
	// in BAC units per hour. Default: 0.015.
	EliminationRatePerHour float64

	// AbsorptionPeakHours is the time from the first drink to assumed peak
	// absorption; BAC ramps linearly to the peak over this window.
	// Default: 0.5.
	AbsorptionPeakHours float64
}

// DefaultWidmarkConfig returns the standard model constants.
func DefaultWidmarkConfig() WidmarkConfig {
	return WidmarkConfig{
		MaleDistributionRatio:   0.68,
		FemaleDistributionRatio: 0.55,
		EliminationRatePerHour:  0.015,
		AbsorptionPeakHours:     0.5,
	}
}

// WidmarkEstimator computes instantaneous BAC from the full drink log.
//
// The model uses a single absorption origin anchored at the first drink:
// every call re-derives the peak from the entire log and one elapsed-hours
// value, so a later drink raises the peak for the next computation instead of
// tracking its own absorption curve. That matches the reference behavior and
// is intentionally not a superposition of per-drink curves.
type WidmarkEstimator struct {
	config WidmarkConfig
}

// NewWidmarkEstimator creates an estimator, filling zero config fields with
// defaults.
func NewWidmarkEstimator(config WidmarkConfig) *WidmarkEstimator {
	if config.MaleDistributionRatio <= 0 {
		config.MaleDistributionRatio = DefaultWidmarkConfig().MaleDistributionRatio
	}
	if config.FemaleDistributionRatio <= 0 {
		config.FemaleDistributionRatio = DefaultWidmarkConfig().FemaleDistributionRatio
	}
	if config.EliminationRatePerHour <= 0 {
		config.EliminationRatePerHour = DefaultWidmarkConfig().EliminationRatePerHour
	}
	if config.AbsorptionPeakHours <= 0 {
		config.AbsorptionPeakHours = DefaultWidmarkConfig().AbsorptionPeakHours
	}
	return &WidmarkEstimator{config: config}
}

// EliminationRatePerHour exposes the configured elimination rate for
// collaborators that share it (sober-time estimates, sensor decay).
func (e *WidmarkEstimator) EliminationRatePerHour() float64 {
	return e.config.EliminationRatePerHour
}

// Estimate returns the BAC for the drink log at elapsedHours since the first
// drink. An empty log yields 0 at any elapsed time; negative elapsed time is
// clamped to 0 before the absorption ramp.
func (e *WidmarkEstimator) Estimate(profile Profile, drinks []Drink, elapsedHours float64) float64 {
	if len(drinks) == 0 {
		return 0
	}
	if elapsedHours < 0 {
		elapsedHours = 0
	}

	totalGrams := TotalEthanolGrams(drinks)
	weightGrams := profile.WeightLbs * poundsToGrams

	ratio := e.config.FemaleDistributionRatio
	if profile.Sex == SexMale {
		ratio = e.config.MaleDistributionRatio
	}

	// Conventional percent units: a single standard drink for a ~150lb
	// person lands in the 0.02-0.03 range.
	peak := totalGrams / (ratio * weightGrams) * 100

	var bac float64
	if elapsedHours <= e.config.AbsorptionPeakHours {
		bac = peak * (elapsedHours / e.config.AbsorptionPeakHours)
	} else {
		bac = peak - e.config.EliminationRatePerHour*(elapsedHours-e.config.AbsorptionPeakHours)
	}

	return math.Max(0, bac)
}
