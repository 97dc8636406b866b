// Package sensor defines the physiological sensor source contract, a
// deterministic-plus-noise simulator standing in for wearable hardware, and a
// resilience wrapper for flaky sources.
package sensor

// Snapshot is one reading of the three monitored channels.
type Snapshot struct {
	// HeartRate in beats per minute.
	HeartRate float64

	// SkinConductance in microsiemens.
	SkinConductance float64

	// Temperature in degrees Fahrenheit.
	Temperature float64
}
