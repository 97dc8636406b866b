package sensor

import (
	"context"
	"math/rand/v2"
)

// Physiological plausibility clamps applied to every simulated reading.
const (
	minHeartRate   = 50.0
	maxHeartRate   = 120.0
	minConductance = 1.0
	minTemperature = 95.0
	maxTemperature = 102.0
)

// SimulatorConfig holds baselines, per-channel BAC response gains, and noise
// amplitudes for the simulated wearable.
type SimulatorConfig struct {
	// Baseline readings at zero BAC. Defaults: 70 BPM, 5.0 µS, 98.6 °F.
	Baseline Snapshot

	// HeartRateGain is BPM added per BAC unit. Default: 20.
	HeartRateGain float64

	// ConductanceGain is µS added per BAC unit. Default: 3.0.
	ConductanceGain float64

	// TemperatureGain is °F added per BAC unit. Default: 2.0.
	TemperatureGain float64

	// HeartRateNoise, ConductanceNoise and TemperatureNoise are half-widths
	// of the uniform noise added per reading. Defaults: 2.0, 0.5, 0.5.
	HeartRateNoise   float64
	ConductanceNoise float64
	TemperatureNoise float64

	// Seed fixes the noise stream for reproducible runs. 0 seeds from the
	// process-wide generator.
	Seed uint64
}

// DefaultSimulatorConfig returns the reference wearable behavior.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Baseline: Snapshot{
			HeartRate:       70.0,
			SkinConductance: 5.0,
			Temperature:     98.6,
		},
		HeartRateGain:    20.0,
		ConductanceGain:  3.0,
		TemperatureGain:  2.0,
		HeartRateNoise:   2.0,
		ConductanceNoise: 0.5,
		TemperatureNoise: 0.5,
	}
}

// Simulator produces wearable-style readings as a deterministic function of
// the current BAC plus bounded uniform noise, clamped to plausible ranges.
//
// Not safe for concurrent use; the monitor reads from a single loop.
type Simulator struct {
	config SimulatorConfig
	rng    *rand.Rand
}

var _ Source = (*Simulator)(nil)

// NewSimulator creates a simulator, filling zero config fields with defaults.
func NewSimulator(config SimulatorConfig) *Simulator {
	defaults := DefaultSimulatorConfig()
	if config.Baseline == (Snapshot{}) {
		config.Baseline = defaults.Baseline
	}
	if config.HeartRateGain == 0 {
		config.HeartRateGain = defaults.HeartRateGain
	}
	if config.ConductanceGain == 0 {
		config.ConductanceGain = defaults.ConductanceGain
	}
	if config.TemperatureGain == 0 {
		config.TemperatureGain = defaults.TemperatureGain
	}
	if config.HeartRateNoise == 0 {
		config.HeartRateNoise = defaults.HeartRateNoise
	}
	if config.ConductanceNoise == 0 {
		config.ConductanceNoise = defaults.ConductanceNoise
	}
	if config.TemperatureNoise == 0 {
		config.TemperatureNoise = defaults.TemperatureNoise
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulator{
		config: config,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Read returns a fresh simulated snapshot. It never fails; the error return
// satisfies Source.
func (s *Simulator) Read(_ context.Context, currentBac float64) (Snapshot, error) {
	hr := s.config.Baseline.HeartRate + currentBac*s.config.HeartRateGain + s.noise(s.config.HeartRateNoise)
	sc := s.config.Baseline.SkinConductance + currentBac*s.config.ConductanceGain + s.noise(s.config.ConductanceNoise)
	temp := s.config.Baseline.Temperature + currentBac*s.config.TemperatureGain + s.noise(s.config.TemperatureNoise)

	return Snapshot{
		HeartRate:       clamp(hr, minHeartRate, maxHeartRate),
		SkinConductance: max(sc, minConductance),
		Temperature:     clamp(temp, minTemperature, maxTemperature),
	}, nil
}

// Baseline returns the configured resting readings.
func (s *Simulator) Baseline() Snapshot {
	return s.config.Baseline
}

// noise draws uniformly from [-halfWidth, halfWidth].
func (s *Simulator) noise(halfWidth float64) float64 {
	return (s.rng.Float64()*2 - 1) * halfWidth
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
