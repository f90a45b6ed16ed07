package session

import (
	"sync"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// Session is one live engine instance. Evaluations on the same session run
// one at a time; different sessions evaluate in parallel.
type Session struct {
	engine ports.Engine
	handle Handle
	mu     sync.Mutex
}

// Handle returns the identity the session is registered under.
func (s *Session) Handle() Handle {
	return s.handle
}

// Eval evaluates code against the session's engine state.
func (s *Session) Eval(code string) (entities.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Eval(code)
}
