// Package monitor orchestrates BAC estimation sessions: the drink log, the
// periodic recomputation loop, retained history, and alert dispatch.
package monitor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/sensor"
)

// Session defaults.
const (
	// DefaultTickInterval is the period of the background recomputation.
	DefaultTickInterval = 5 * time.Second

	// DefaultHistoryLimit bounds retained samples per session: 12 hours at
	// the default tick interval.
	DefaultHistoryLimit = 8640
)

// SessionConfig holds construction parameters for a Session. Only Profile is
// required; every nil or zero collaborator is replaced with a default.
type SessionConfig struct {
	// Profile of the monitored person. Required and validated.
	Profile bac.Profile

	// TickInterval between background recomputations. Default: 5s.
	TickInterval time.Duration

	// HistoryLimit bounds retained history samples; the oldest samples are
	// dropped first. Default: 8640.
	HistoryLimit int

	// AlertCooldown overrides the throttle's suppression window when
	// positive.
	AlertCooldown time.Duration

	Logger   zerolog.Logger
	Clock    Clock
	Source   sensor.Source
	Notifier alert.Notifier
	Metrics  *Metrics
	Catalog  *bac.Catalog

	Widmark         *bac.WidmarkEstimator
	SensorEstimator *bac.SensorEstimator
	Blender         *bac.Blender
	Classifier      *bac.EffectClassifier
	Throttle        *alert.Throttle
}

// Sample is one recorded history point.
type Sample struct {
	At      time.Time
	Bac     float64
	Sensors sensor.Snapshot
}

// Status is the read-only snapshot exposed to collaborators. It is always
// well formed; after a failed tick it simply carries the last-known values.
type Status struct {
	SessionID             string
	Running               bool
	Bac                   float64
	Tier                  bac.Tier
	Effects               string
	Recommendation        string
	Color                 string
	SoberHours            float64
	Sensors               sensor.Snapshot
	DrinkCount            int
	MinutesSinceLastDrink float64
	UpdatedAt             time.Time
}

// Session owns one person's monitoring state and the background loop that
// keeps it current. A single coarse mutex serializes the loop against
// caller-invoked operations.
type Session struct {
	id        string
	profile   bac.Profile
	createdAt time.Time

	tickInterval time.Duration
	historyLimit int

	logger   zerolog.Logger
	clock    Clock
	source   sensor.Source
	notifier alert.Notifier
	metrics  *Metrics
	catalog  *bac.Catalog

	widmark         *bac.WidmarkEstimator
	sensorEstimator *bac.SensorEstimator
	blender         *bac.Blender
	classifier      *bac.EffectClassifier

	mu           sync.Mutex
	throttle     *alert.Throttle
	drinks       []bac.Drink
	firstDrinkAt time.Time
	lastDrinkAt  time.Time
	currentBac   float64
	baseline     sensor.Snapshot
	lastReading  sensor.Snapshot
	history      []Sample
	running      bool
	stop         chan struct{}
	done         chan struct{}
}

// NewSession validates the profile and assembles a session with its
// collaborators, capturing the sensor baseline once.
func NewSession(config SessionConfig) (*Session, error) {
	if err := config.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = DefaultHistoryLimit
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.Source == nil {
		config.Source = sensor.NewSimulator(sensor.SimulatorConfig{})
	}
	if config.Catalog == nil {
		config.Catalog = bac.DefaultCatalog()
	}
	if config.Widmark == nil {
		config.Widmark = bac.NewWidmarkEstimator(bac.WidmarkConfig{})
	}
	if config.SensorEstimator == nil {
		config.SensorEstimator = bac.NewSensorEstimator(bac.SensorEstimatorConfig{})
	}
	if config.Blender == nil {
		config.Blender = bac.NewBlender(bac.BlendConfig{})
	}
	if config.Classifier == nil {
		config.Classifier = bac.NewEffectClassifier(nil, config.Widmark.EliminationRatePerHour())
	}
	if config.Throttle == nil {
		config.Throttle = alert.NewThrottle(alert.DefaultThrottleConfig())
	}
	if config.AlertCooldown > 0 {
		config.Throttle.SetCooldown(config.AlertCooldown)
	}

	id := "ses_" + uuid.New().String()[:22]
	logger := config.Logger.With().Str("session_id", id).Logger()

	if config.Notifier == nil {
		config.Notifier = alert.NewLogNotifier(logger)
	}

	baseline := config.Source.Baseline()

	return &Session{
		id:              id,
		profile:         config.Profile,
		createdAt:       config.Clock.Now(),
		tickInterval:    config.TickInterval,
		historyLimit:    config.HistoryLimit,
		logger:          logger,
		clock:           config.Clock,
		source:          config.Source,
		notifier:        config.Notifier,
		metrics:         config.Metrics,
		catalog:         config.Catalog,
		widmark:         config.Widmark,
		sensorEstimator: config.SensorEstimator,
		blender:         config.Blender,
		classifier:      config.Classifier,
		throttle:        config.Throttle,
		baseline:        baseline,
		lastReading:     baseline,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Profile returns the immutable session profile.
func (s *Session) Profile() bac.Profile {
	return s.profile
}

// CreatedAt returns the session creation timestamp.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Running reports whether the background loop is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start spawns the background recomputation loop. Calling Start on a running
// session is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go s.run(stop, done)

	s.logger.Info().
		Dur("tick_interval", s.tickInterval).
		Msg("session monitoring started")
}

// Stop signals the background loop and blocks until the in-flight tick has
// fully exited. Calling Stop on a stopped session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	s.logger.Info().Msg("session monitoring stopped")
}

// run drives the fixed-interval tick until stopped.
func (s *Session) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Tick(context.Background())
		}
	}
}

// Tick performs one recomputation cycle: sensor read, BAC update, history
// append, alert evaluation. The background loop calls it on every interval;
// callers may also drive it directly when the loop is not running. A failed
// sensor read aborts the cycle with state untouched; the next cycle retries.
func (s *Session) Tick(ctx context.Context) {
	started := time.Now()

	s.mu.Lock()
	knownBac := s.currentBac
	s.mu.Unlock()

	reading, err := s.source.Read(ctx, knownBac)
	if err != nil {
		s.logger.Warn().Err(err).Msg("sensor read failed, skipping tick")
		s.metrics.RecordTick(s.clock.Now(), time.Since(started), true)
		return
	}

	s.mu.Lock()
	s.lastReading = reading
	s.recomputeLocked()

	now := s.clock.Now()
	s.appendHistoryLocked(Sample{At: now, Bac: s.currentBac, Sensors: reading})

	event, fired := s.throttle.Evaluate(s.currentBac, now)
	if fired {
		event.Message = alertMessage(event.Level, event.Bac, s.classifier.Classify(event.Bac))
	}
	s.mu.Unlock()

	if fired {
		s.metrics.RecordAlert()
		s.notifier.Notify(ctx, event)
	}
	s.metrics.RecordTick(now, time.Since(started), false)
}

// recomputeLocked derives the current BAC from the authoritative drink log
// and clock. Caller holds s.mu.
func (s *Session) recomputeLocked() {
	if len(s.drinks) == 0 {
		s.currentBac = 0
		return
	}

	now := s.clock.Now()
	elapsedHours := now.Sub(s.firstDrinkAt).Hours()
	widmarkBac := s.widmark.Estimate(s.profile, s.drinks, elapsedHours)

	sensorAvailable := !s.lastDrinkAt.IsZero()
	var sensorBac float64
	if sensorAvailable {
		hoursSinceLast := now.Sub(s.lastDrinkAt).Hours()
		sensorBac = s.sensorEstimator.Estimate(s.lastReading, s.baseline, hoursSinceLast, s.profile)
	}

	s.currentBac = math.Max(0, s.blender.Blend(widmarkBac, sensorBac, sensorAvailable))
}

// appendHistoryLocked records a sample, dropping the oldest beyond the
// history limit. Caller holds s.mu.
func (s *Session) appendHistoryLocked(sample Sample) {
	s.history = append(s.history, sample)
	if len(s.history) > s.historyLimit {
		overflow := len(s.history) - s.historyLimit
		s.history = append(s.history[:0], s.history[overflow:]...)
	}
}

// AddDrink resolves the drink type against the catalog (overrides win,
// unknown types fall back to the generic default), appends the record, and
// recomputes synchronously so the caller observes the post-add BAC.
func (s *Session) AddDrink(drinkType string, overrides bac.DrinkOverrides) (bac.Drink, error) {
	spec := s.catalog.Resolve(drinkType, overrides)

	s.mu.Lock()
	now := s.clock.Now()
	drink, err := bac.NewDrink(drinkType, spec.VolumeOz, spec.AlcoholPercent, now)
	if err != nil {
		s.mu.Unlock()
		return bac.Drink{}, err
	}

	s.drinks = append(s.drinks, drink)
	if s.firstDrinkAt.IsZero() {
		s.firstDrinkAt = now
	}
	s.lastDrinkAt = now

	s.recomputeLocked()
	bacNow := s.currentBac
	s.mu.Unlock()

	s.metrics.RecordDrink()
	s.logger.Info().
		Str("drink_id", drink.ID).
		Str("type", drink.Type).
		Float64("volume_oz", drink.VolumeOz).
		Float64("alcohol_percent", drink.AlcoholPercent).
		Float64("bac", bacNow).
		Msg("drink logged")

	return drink, nil
}

// Status returns a consistent snapshot of the session. Read-only.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	band := s.classifier.Classify(s.currentBac)

	var minutesSinceLast float64
	if !s.lastDrinkAt.IsZero() {
		minutesSinceLast = now.Sub(s.lastDrinkAt).Minutes()
	}

	return Status{
		SessionID:             s.id,
		Running:               s.running,
		Bac:                   s.currentBac,
		Tier:                  band.Tier,
		Effects:               band.Effects,
		Recommendation:        band.Recommendation,
		Color:                 band.Color,
		SoberHours:            s.classifier.SoberHours(s.currentBac),
		Sensors:               s.lastReading,
		DrinkCount:            len(s.drinks),
		MinutesSinceLastDrink: minutesSinceLast,
		UpdatedAt:             now,
	}
}

// Drinks returns a copy of the drink log in insertion order.
func (s *Session) Drinks() []bac.Drink {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bac.Drink, len(s.drinks))
	copy(out, s.drinks)
	return out
}

// RecentData returns the chronological samples within the trailing window,
// re-filtered from the retained history on every call.
func (s *Session) RecentData(window time.Duration) []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-window)
	start := len(s.history)
	for i, sample := range s.history {
		if !sample.At.Before(cutoff) {
			start = i
			break
		}
	}

	out := make([]Sample, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// Reset clears the drink log, history, BAC, and alert state back to initial
// values. The profile, sensor baseline, and running flag are unaffected.
func (s *Session) Reset() {
	s.mu.Lock()
	s.drinks = nil
	s.history = nil
	s.currentBac = 0
	s.firstDrinkAt = time.Time{}
	s.lastDrinkAt = time.Time{}
	s.throttle.Reset()
	s.mu.Unlock()

	s.logger.Info().Msg("session reset")
}

// CheckAlerts classifies the current BAC against the alert thresholds
// without touching throttle state, so a manual check never consumes a
// scheduled alert. The second return is false below the warning threshold.
func (s *Session) CheckAlerts() (alert.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.throttle.Peek(s.currentBac)
	if level == alert.LevelNone {
		return alert.Event{}, false
	}

	return alert.Event{
		Level:   level,
		Bac:     s.currentBac,
		Message: alertMessage(level, s.currentBac, s.classifier.Classify(s.currentBac)),
		FiredAt: s.clock.Now(),
	}, true
}

// SetAlertCooldown replaces the throttle's suppression window.
func (s *Session) SetAlertCooldown(d time.Duration) {
	s.mu.Lock()
	s.throttle.SetCooldown(d)
	cooldown := s.throttle.Cooldown()
	s.mu.Unlock()

	s.logger.Info().Dur("cooldown", cooldown).Msg("alert cooldown updated")
}

// AlertCooldown returns the throttle's current suppression window.
func (s *Session) AlertCooldown() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.throttle.Cooldown()
}

// ShiftClock moves the first-drink timestamp backward by d and forces a
// recomputation, simulating elapsed time without waiting. The last-drink
// timestamp is untouched so sensor decay is unaffected. A no-op before the
// first drink.
func (s *Session) ShiftClock(d time.Duration) {
	if d < 0 {
		d = -d
	}

	s.mu.Lock()
	shifted := false
	if !s.firstDrinkAt.IsZero() {
		s.firstDrinkAt = s.firstDrinkAt.Add(-d)
		s.recomputeLocked()
		shifted = true
	}
	bacNow := s.currentBac
	s.mu.Unlock()

	if shifted {
		s.logger.Info().Dur("shift", d).Float64("bac", bacNow).Msg("clock shifted")
	}
}

// Baseline returns the immutable sensor baseline captured at creation.
func (s *Session) Baseline() sensor.Snapshot {
	return s.baseline
}

// alertMessage composes the display text for an alert at the given level.
func alertMessage(level alert.Level, bacValue float64, band bac.EffectBand) string {
	if level == alert.LevelNone {
		return fmt.Sprintf("BAC: %.3f - below alert thresholds", bacValue)
	}
	return fmt.Sprintf("BAC: %.3f - %s", bacValue, band.Recommendation)
}
