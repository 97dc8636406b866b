package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Resilience errors.
var (
	// ErrSourceUnavailable is returned when the circuit breaker is open and
	// reads are failing fast.
	ErrSourceUnavailable = errors.New("sensor source unavailable")
)

// ResilientConfig holds retry and circuit breaker settings for a wrapped
// source. Retries are deliberately short: a failed read is abandoned and the
// monitor tries again on its next tick, so the whole budget must stay well
// under the tick interval.
type ResilientConfig struct {
	// Name identifies the wrapped source for breaker state logging.
	Name string

	// MaxRetries is the number of retry attempts per read. Default: 2.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff. Default: 50ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff. Default: 250ms.
	MaxInterval time.Duration

	// BreakerMaxRequests is the number of probe reads allowed in half-open
	// state. Default: 1.
	BreakerMaxRequests uint32

	// BreakerTimeout is the open-state period before probing again.
	// Default: 30 seconds.
	BreakerTimeout time.Duration

	// ReadyToTrip decides when to open the breaker. If nil, trips at 5+
	// reads with a failure rate of 50% or higher.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is called on breaker state transitions.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultResilientConfig returns sensible defaults for wrapping a source.
func DefaultResilientConfig(name string) ResilientConfig {
	return ResilientConfig{
		Name:               name,
		MaxRetries:         2,
		InitialInterval:    50 * time.Millisecond,
		MaxInterval:        250 * time.Millisecond,
		BreakerMaxRequests: 1,
		BreakerTimeout:     30 * time.Second,
		ReadyToTrip:        defaultReadyToTrip,
	}
}

// defaultReadyToTrip opens the breaker when at least 5 reads have been made
// and half or more failed.
func defaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// Resilient wraps a Source with circuit breaker protection and short
// exponential-backoff retries, so a flapping hardware source degrades to
// fast-failing reads instead of stalling the monitor loop.
type Resilient struct {
	inner   Source
	breaker *gobreaker.CircuitBreaker[Snapshot]
	config  ResilientConfig
}

var _ Source = (*Resilient)(nil)

// NewResilient wraps the given source, filling zero config fields with
// defaults.
func NewResilient(inner Source, config ResilientConfig) *Resilient {
	defaults := DefaultResilientConfig(config.Name)
	if config.MaxRetries == 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.InitialInterval == 0 {
		config.InitialInterval = defaults.InitialInterval
	}
	if config.MaxInterval == 0 {
		config.MaxInterval = defaults.MaxInterval
	}
	if config.BreakerMaxRequests == 0 {
		config.BreakerMaxRequests = defaults.BreakerMaxRequests
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = defaults.BreakerTimeout
	}
	if config.ReadyToTrip == nil {
		config.ReadyToTrip = defaultReadyToTrip
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.BreakerMaxRequests,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: config.ReadyToTrip,
	}
	if config.OnStateChange != nil {
		settings.OnStateChange = config.OnStateChange
	}

	return &Resilient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[Snapshot](settings),
		config:  config,
	}
}

// Read reads through the breaker, retrying transient failures with
// exponential backoff. Returns ErrSourceUnavailable immediately while the
// breaker is open.
func (r *Resilient) Read(ctx context.Context, currentBac float64) (Snapshot, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.config.InitialInterval
	bo.MaxInterval = r.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries are bounded by WithMaxRetries

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, r.config.MaxRetries), ctx)

	var snapshot Snapshot
	operation := func() error {
		result, err := r.breaker.Execute(func() (Snapshot, error) {
			return r.inner.Read(ctx, currentBac)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrSourceUnavailable)
			}
			return err
		}
		snapshot = result
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// Baseline passes through to the wrapped source.
func (r *Resilient) Baseline() Snapshot {
	return r.inner.Baseline()
}

// BreakerState returns the current circuit breaker state.
func (r *Resilient) BreakerState() gobreaker.State {
	return r.breaker.State()
}
