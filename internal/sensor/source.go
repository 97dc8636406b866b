package sensor

import "context"

// Source produces live physiological readings. Read receives the current BAC
// estimate so simulated sources can derive plausible values; a hardware
// driver is free to ignore it.
type Source interface {
	// Read returns the current snapshot. Implementations may block on I/O
	// and must honor ctx cancellation.
	Read(ctx context.Context, currentBac float64) (Snapshot, error)

	// Baseline returns the resting readings captured at calibration. The
	// monitor records it once per session and treats it as immutable.
	Baseline() Snapshot
}
