package sensor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacmon/bacmon/internal/sensor"
)

func TestSimulator_Read_NearBaselineAtZeroBac(t *testing.T) {
	sim := sensor.NewSimulator(sensor.SimulatorConfig{Seed: 42})
	baseline := sim.Baseline()

	for i := 0; i < 50; i++ {
		snap, err := sim.Read(context.Background(), 0)
		require.NoError(t, err)

		assert.InDelta(t, baseline.HeartRate, snap.HeartRate, 2.0)
		assert.InDelta(t, baseline.SkinConductance, snap.SkinConductance, 0.5)
		assert.InDelta(t, baseline.Temperature, snap.Temperature, 0.5)
	}
}

func TestSimulator_Read_RespondsToBac(t *testing.T) {
	sim := sensor.NewSimulator(sensor.SimulatorConfig{Seed: 7})

	// At BAC 0.5 the heart rate sits around 70 + 0.5*20 = 80 BPM.
	snap, err := sim.Read(context.Background(), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, snap.HeartRate, 2.0)
	assert.InDelta(t, 6.5, snap.SkinConductance, 0.5)
	assert.InDelta(t, 99.6, snap.Temperature, 0.5)
}

func TestSimulator_Read_ClampsToPlausibleRanges(t *testing.T) {
	sim := sensor.NewSimulator(sensor.SimulatorConfig{Seed: 99})

	// An absurd BAC pushes every channel past its clamp.
	for i := 0; i < 20; i++ {
		snap, err := sim.Read(context.Background(), 5.0)
		require.NoError(t, err)

		assert.LessOrEqual(t, snap.HeartRate, 120.0)
		assert.LessOrEqual(t, snap.Temperature, 102.0)
	}

	// A low baseline with negative noise hits the conductance floor.
	low := sensor.NewSimulator(sensor.SimulatorConfig{
		Baseline: sensor.Snapshot{HeartRate: 55, SkinConductance: 1.1, Temperature: 95.5},
		Seed:     3,
	})
	for i := 0; i < 50; i++ {
		snap, err := low.Read(context.Background(), 0)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, snap.SkinConductance, 1.0)
		assert.GreaterOrEqual(t, snap.HeartRate, 50.0)
		assert.GreaterOrEqual(t, snap.Temperature, 95.0)
	}
}

func TestSimulator_Read_DeterministicWithSeed(t *testing.T) {
	a := sensor.NewSimulator(sensor.SimulatorConfig{Seed: 1234})
	b := sensor.NewSimulator(sensor.SimulatorConfig{Seed: 1234})

	for i := 0; i < 10; i++ {
		snapA, err := a.Read(context.Background(), 0.05)
		require.NoError(t, err)
		snapB, err := b.Read(context.Background(), 0.05)
		require.NoError(t, err)

		assert.Equal(t, snapA, snapB)
	}
}

func TestSimulator_Baseline(t *testing.T) {
	sim := sensor.NewSimulator(sensor.SimulatorConfig{})
	baseline := sim.Baseline()

	assert.Equal(t, 70.0, baseline.HeartRate)
	assert.Equal(t, 5.0, baseline.SkinConductance)
	assert.Equal(t, 98.6, baseline.Temperature)
}
