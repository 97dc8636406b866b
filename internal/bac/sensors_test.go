package bac_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/sensor"
)

var testBaseline = sensor.Snapshot{
	HeartRate:       70.0,
	SkinConductance: 5.0,
	Temperature:     98.6,
}

func TestSensorEstimator_Estimate_AllChannelsElevated(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexFemale}

	current := sensor.Snapshot{
		HeartRate:       80.0,  // dev 10/70 ≈ 0.143 > 0.10
		SkinConductance: 6.0,   // dev 1/5 = 0.20 > 0.15
		Temperature:     101.0, // dev 2.4/98.6 ≈ 0.024 > 0.02
	}

	got := estimator.Estimate(current, testBaseline, 0, profile)

	want := 0.02*(10.0/70.0) + 0.015*0.2 + 0.01*(2.4/98.6)
	assert.InDelta(t, want, got, 1e-9)
}

func TestSensorEstimator_Estimate_BelowThresholdsIsZero(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexMale}

	current := sensor.Snapshot{
		HeartRate:       75.0, // dev ≈ 0.071
		SkinConductance: 5.5,  // dev = 0.10
		Temperature:     99.0, // dev ≈ 0.004
	}

	assert.Zero(t, estimator.Estimate(current, testBaseline, 0, profile))
}

func TestSensorEstimator_Estimate_BelowBaselineIsZero(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexMale}

	// Negative deviations never cross the positive thresholds.
	current := sensor.Snapshot{
		HeartRate:       55.0,
		SkinConductance: 3.0,
		Temperature:     96.0,
	}

	assert.Zero(t, estimator.Estimate(current, testBaseline, 0, profile))
}

func TestSensorEstimator_Estimate_DecaysSinceLastDrink(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexFemale}

	current := sensor.Snapshot{
		HeartRate:       85.0,
		SkinConductance: 6.5,
		Temperature:     101.5,
	}

	fresh := estimator.Estimate(current, testBaseline, 0, profile)
	aged := estimator.Estimate(current, testBaseline, 2.0, profile)

	assert.InDelta(t, fresh*math.Exp(-0.015*2.0), aged, 1e-9)
	assert.Less(t, aged, fresh)
}

func TestSensorEstimator_Estimate_NegativeHoursClamped(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexFemale}

	current := sensor.Snapshot{
		HeartRate:       85.0,
		SkinConductance: 6.5,
		Temperature:     101.5,
	}

	fresh := estimator.Estimate(current, testBaseline, 0, profile)
	clamped := estimator.Estimate(current, testBaseline, -3.0, profile)
	assert.Equal(t, fresh, clamped)
}

func TestSensorEstimator_Estimate_ZeroBaselineGuard(t *testing.T) {
	estimator := bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	profile := bac.Profile{WeightLbs: 150, Sex: bac.SexMale}

	current := sensor.Snapshot{HeartRate: 90, SkinConductance: 7, Temperature: 100}
	got := estimator.Estimate(current, sensor.Snapshot{}, 0, profile)
	assert.Zero(t, got)
}
