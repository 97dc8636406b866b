package bac

import (
	"math"

	"github.com/bacmon/bacmon/internal/sensor"
)

// SensorEstimatorConfig holds per-channel thresholds and weights for the
// sensor-deviation estimator. A channel contributes weight × deviation once
// its fractional deviation from baseline exceeds the threshold; smaller
// deviations are treated as noise.
type SensorEstimatorConfig struct {
	// HeartRateThreshold is the minimum fractional deviation before heart
	// rate contributes. Default: 0.10.
	HeartRateThreshold float64

	// HeartRateWeight scales the heart rate contribution. Default: 0.02.
	HeartRateWeight float64

	// ConductanceThreshold gates the skin conductance channel. Default: 0.15.
	ConductanceThreshold float64

	// ConductanceWeight scales the conductance contribution. Default: 0.015.
	ConductanceWeight float64

	// TemperatureThreshold gates the temperature channel. Default: 0.02.
	TemperatureThreshold float64

	// TemperatureWeight scales the temperature contribution. Default: 0.01.
	TemperatureWeight float64

	// EliminationRatePerHour drives the exponential decay of the estimate by
	// hours since the last drink. Default: 0.015.
	EliminationRatePerHour float64
}

// DefaultSensorEstimatorConfig returns the reference heuristic constants.
func DefaultSensorEstimatorConfig() SensorEstimatorConfig {
	return SensorEstimatorConfig{
		HeartRateThreshold:     0.10,
		HeartRateWeight:        0.02,
		ConductanceThreshold:   0.15,
		ConductanceWeight:      0.015,
		TemperatureThreshold:   0.02,
		TemperatureWeight:      0.01,
		EliminationRatePerHour: 0.015,
	}
}

// SensorEstimator derives a secondary BAC estimate from physiological
// deviations against a personal baseline. This is a coarse heuristic signal,
// not a calibrated model; the formula is the reproducible contract.
type SensorEstimator struct {
	config SensorEstimatorConfig
}

// NewSensorEstimator creates an estimator, filling zero config fields with
// defaults.
func NewSensorEstimator(config SensorEstimatorConfig) *SensorEstimator {
	defaults := DefaultSensorEstimatorConfig()
	if config.HeartRateThreshold == 0 {
		config.HeartRateThreshold = defaults.HeartRateThreshold
	}
	if config.HeartRateWeight == 0 {
		config.HeartRateWeight = defaults.HeartRateWeight
	}
	if config.ConductanceThreshold == 0 {
		config.ConductanceThreshold = defaults.ConductanceThreshold
	}
	if config.ConductanceWeight == 0 {
		config.ConductanceWeight = defaults.ConductanceWeight
	}
	if config.TemperatureThreshold == 0 {
		config.TemperatureThreshold = defaults.TemperatureThreshold
	}
	if config.TemperatureWeight == 0 {
		config.TemperatureWeight = defaults.TemperatureWeight
	}
	if config.EliminationRatePerHour == 0 {
		config.EliminationRatePerHour = defaults.EliminationRatePerHour
	}
	return &SensorEstimator{config: config}
}

// Estimate computes the sensor-based BAC from the current reading against the
// baseline, decayed exponentially by hours since the last drink. The profile
// is accepted for future per-person calibration and is currently unused
// numerically.
func (e *SensorEstimator) Estimate(current, baseline sensor.Snapshot, hoursSinceLastDrink float64, profile Profile) float64 {
	if hoursSinceLastDrink < 0 {
		hoursSinceLastDrink = 0
	}

	var estimate float64
	if dev := fractionalDeviation(current.HeartRate, baseline.HeartRate); dev > e.config.HeartRateThreshold {
		estimate += e.config.HeartRateWeight * dev
	}
	if dev := fractionalDeviation(current.SkinConductance, baseline.SkinConductance); dev > e.config.ConductanceThreshold {
		estimate += e.config.ConductanceWeight * dev
	}
	if dev := fractionalDeviation(current.Temperature, baseline.Temperature); dev > e.config.TemperatureThreshold {
		estimate += e.config.TemperatureWeight * dev
	}

	estimate *= math.Exp(-e.config.EliminationRatePerHour * hoursSinceLastDrink)

	return math.Max(0, estimate)
}

// fractionalDeviation is (current - baseline) / baseline, or 0 for a zero
// baseline.
func fractionalDeviation(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline
}
