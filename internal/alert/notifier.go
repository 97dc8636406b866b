package alert

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier receives fired alert events. Implementations must not block the
// monitor loop for long; delivery is fire-and-forget from the session's
// perspective.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}

// LogNotifier writes alert events to the structured log, mapping alert
// severity to log level.
type LogNotifier struct {
	logger zerolog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier over the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the event.
func (n *LogNotifier) Notify(_ context.Context, event Event) {
	var logEvent *zerolog.Event
	switch event.Level {
	case LevelCritical:
		logEvent = n.logger.Error()
	case LevelDanger, LevelWarning:
		logEvent = n.logger.Warn()
	default:
		logEvent = n.logger.Info()
	}

	logEvent.
		Str("alert_id", event.ID).
		Str("level", string(event.Level)).
		Float64("bac", event.Bac).
		Time("fired_at", event.FiredAt).
		Msg(event.Message)
}
