package bac_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacmon/bacmon/internal/bac"
)

func mustDrink(t *testing.T, drinkType string, volumeOz, alcoholPercent float64) bac.Drink {
	t.Helper()
	d, err := bac.NewDrink(drinkType, volumeOz, alcoholPercent, time.Now())
	require.NoError(t, err)
	return d
}

func TestWidmarkEstimator_Estimate_SingleBeerAtPeak(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 133, Sex: bac.SexFemale}
	drinks := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}

	// elapsed 0.5h is the absorption boundary: full peak.
	// peak = 14.0g / (0.55 * 133 * 453.592g) * 100
	got := estimator.Estimate(profile, drinks, 0.5)
	assert.InDelta(t, 0.0422, got, 0.0005)
}

func TestWidmarkEstimator_Estimate_EliminationPhase(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 133, Sex: bac.SexFemale}
	drinks := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}

	atPeak := estimator.Estimate(profile, drinks, 0.5)
	afterHour := estimator.Estimate(profile, drinks, 1.0)

	// Half an hour past peak eliminates 0.015 * 0.5.
	assert.InDelta(t, atPeak-0.0075, afterHour, 1e-9)
	assert.Less(t, afterHour, atPeak)
}

func TestWidmarkEstimator_Estimate_MaleRatio(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	drinks := []bac.Drink{
		mustDrink(t, "beer", 12.0, 5.0),
		mustDrink(t, "beer", 12.0, 5.0),
		mustDrink(t, "beer", 12.0, 5.0),
	}
	profile := bac.Profile{WeightLbs: 160, Sex: bac.SexMale}

	// peak = 42.0g / (0.68 * 160 * 453.592g) * 100 = 0.0851; minus one hour
	// of elimination past the 30-minute peak.
	got := estimator.Estimate(profile, drinks, 1.5)
	assert.InDelta(t, 0.0701, got, 0.0005)
}

func TestWidmarkEstimator_Estimate_EmptyDrinkList(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexMale}

	assert.Zero(t, estimator.Estimate(profile, nil, 0))
	assert.Zero(t, estimator.Estimate(profile, nil, 0.5))
	assert.Zero(t, estimator.Estimate(profile, []bac.Drink{}, 12.0))
}

func TestWidmarkEstimator_Estimate_NeverNegative(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 200, Sex: bac.SexMale}
	drinks := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}

	// Far past the point where elimination would drive the value below zero.
	got := estimator.Estimate(profile, drinks, 48.0)
	assert.Zero(t, got)
}

func TestWidmarkEstimator_Estimate_NegativeElapsedClamped(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexFemale}
	drinks := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}

	got := estimator.Estimate(profile, drinks, -2.0)
	assert.Zero(t, got)
}

func TestWidmarkEstimator_Estimate_TwoPhaseMonotonicity(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexFemale}
	drinks := []bac.Drink{
		mustDrink(t, "wine", 5.0, 12.0),
		mustDrink(t, "wine", 5.0, 12.0),
	}

	// Strictly rising through the absorption ramp.
	prev := estimator.Estimate(profile, drinks, 0)
	assert.Zero(t, prev)
	for _, h := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
		cur := estimator.Estimate(profile, drinks, h)
		assert.Greater(t, cur, prev, "expected strict rise at %.1fh", h)
		prev = cur
	}

	// Strictly falling past the peak until the zero clamp.
	for _, h := range []float64{0.75, 1.0, 1.5, 2.0} {
		cur := estimator.Estimate(profile, drinks, h)
		assert.Less(t, cur, prev, "expected strict fall at %.2fh", h)
		assert.GreaterOrEqual(t, cur, 0.0)
		prev = cur
	}
}

func TestWidmarkEstimator_Estimate_Pure(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 133, Sex: bac.SexFemale}
	drinks := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}

	first := estimator.Estimate(profile, drinks, 0.75)
	second := estimator.Estimate(profile, drinks, 0.75)
	assert.Equal(t, first, second)
}

// Adding a drink later shares the absorption origin of the first drink: the
// model only grows total grams, it does not track per-drink curves.
func TestWidmarkEstimator_Estimate_SharedAbsorptionOrigin(t *testing.T) {
	estimator := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexMale}

	one := []bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}
	two := append([]bac.Drink{mustDrink(t, "beer", 12.0, 5.0)}, one...)

	atTwoHours := estimator.Estimate(profile, two, 2.0)

	// Exactly double the single-drink peak minus the same elimination term.
	peakOne := estimator.Estimate(profile, one, 0.5)
	expected := 2*peakOne - 0.015*1.5
	assert.InDelta(t, expected, atTwoHours, 1e-9)
}

func TestNewWidmarkEstimator_ZeroConfigUsesDefaults(t *testing.T) {
	fromZero := bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	fromDefaults := bac.NewWidmarkEstimator(bac.DefaultWidmarkConfig())
	profile := bac.Profile{WeightLbs: 140, Sex: bac.SexFemale}
	drinks := []bac.Drink{mustDrink(t, "cocktail", 8.0, 15.0)}

	assert.Equal(t,
		fromDefaults.Estimate(profile, drinks, 1.25),
		fromZero.Estimate(profile, drinks, 1.25),
	)
	assert.Equal(t, 0.015, fromZero.EliminationRatePerHour())
}
