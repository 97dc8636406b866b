package bac

// BlendConfig weights the two BAC estimates when both are available.
type BlendConfig struct {
	// WidmarkWeight scales the drink-log estimate. Default: 0.7.
	WidmarkWeight float64

	// SensorWeight scales the sensor estimate. Default: 0.3.
	SensorWeight float64
}

// DefaultBlendConfig returns the standard blend weighting.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		WidmarkWeight: 0.7,
		SensorWeight:  0.3,
	}
}

// Blender combines the Widmark and sensor estimates into the authoritative
// current BAC.
type Blender struct {
	config BlendConfig
}

// NewBlender creates a blender, filling zero config fields with defaults.
func NewBlender(config BlendConfig) *Blender {
	if config.WidmarkWeight == 0 {
		config.WidmarkWeight = DefaultBlendConfig().WidmarkWeight
	}
	if config.SensorWeight == 0 {
		config.SensorWeight = DefaultBlendConfig().SensorWeight
	}
	return &Blender{config: config}
}

// Blend returns the weighted combination when a sensor estimate is available
// (a drink has been recorded), and the Widmark value alone otherwise.
func (b *Blender) Blend(widmarkBac, sensorBac float64, sensorAvailable bool) float64 {
	if !sensorAvailable {
		return widmarkBac
	}
	return b.config.WidmarkWeight*widmarkBac + b.config.SensorWeight*sensorBac
}
