package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	logger *slog.Logger
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		logger: slog.Default(),
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithLogger sets the logger session lifecycle events are written to.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Registry maps handles to live sessions. It is safe for concurrent use.
type Registry struct {
	factory  ports.EngineFactory
	logger   *slog.Logger
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry whose sessions get their engines
// from factory.
func NewRegistry(factory ports.EngineFactory, opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		factory:  factory,
		logger:   cfg.logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session under a fresh handle.
func (r *Registry) Create() (Handle, *Session) {
	// engine construction can be slow; keep it outside the lock
	s := &Session{
		handle: NewHandle(),
		engine: r.factory.NewEngine(),
	}

	r.mu.Lock()
	r.sessions[s.handle.id] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.logger.Debug("session created", "handle", s.handle.String(), "live", n)
	return s.handle, s
}

// Lookup returns the session for h, or false if it was never created or has
// been destroyed.
func (r *Registry) Lookup(h Handle) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[h.id]
	return s, ok
}

// Destroy removes the session for h. Destroying an unknown handle is a no-op.
// An evaluation already running on the session finishes normally.
func (r *Registry) Destroy(h Handle) {
	r.mu.Lock()
	_, ok := r.sessions[h.id]
	delete(r.sessions, h.id)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.logger.Debug("session destroyed", "handle", h.String(), "live", n)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
