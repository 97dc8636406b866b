package monitor

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/sensor"
)

// Registry errors.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// RegistryConfig carries the collaborators shared by every session the
// registry creates. Zero fields fall back to session defaults.
type RegistryConfig struct {
	Logger  zerolog.Logger
	Clock   Clock
	Metrics *Metrics
	Catalog *bac.Catalog

	// TickInterval applied to new sessions. Default: 5s.
	TickInterval time.Duration

	// HistoryLimit applied to new sessions. Default: 8640.
	HistoryLimit int

	// AlertCooldown applied to new sessions when positive.
	AlertCooldown time.Duration

	// SourceFactory builds one sensor source per session so concurrent
	// sessions never share simulator state. Nil means a fresh default
	// simulator per session.
	SourceFactory func() sensor.Source

	Notifier alert.Notifier
}

// Registry holds the live sessions of this process, keyed by session ID.
type Registry struct {
	config RegistryConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry(config RegistryConfig) *Registry {
	return &Registry{
		config:   config,
		sessions: make(map[string]*Session),
	}
}

// Create validates the profile, assembles a session with the registry's
// shared collaborators, and registers it. The session is not started.
func (r *Registry) Create(profile bac.Profile) (*Session, error) {
	var source sensor.Source
	if r.config.SourceFactory != nil {
		source = r.config.SourceFactory()
	}

	session, err := NewSession(SessionConfig{
		Profile:       profile,
		TickInterval:  r.config.TickInterval,
		HistoryLimit:  r.config.HistoryLimit,
		AlertCooldown: r.config.AlertCooldown,
		Logger:        r.config.Logger,
		Clock:         r.config.Clock,
		Source:        source,
		Notifier:      r.config.Notifier,
		Metrics:       r.config.Metrics,
		Catalog:       r.config.Catalog,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	return session, nil
}

// Get retrieves a session by ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete stops the session's loop and removes it from the registry.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	session.Stop()
	return nil
}

// List returns the registered sessions ordered by creation time, oldest
// first.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StopAll stops every registered session's loop. Sessions stay registered;
// this is the shutdown path.
func (r *Registry) StopAll() {
	for _, session := range r.List() {
		session.Stop()
	}
}
