package navigation

import (
	"context"
	"sync"

	"schoolhub/internal/logger"
	"schoolhub/internal/models"
	"schoolhub/internal/repository"
)

// Store is the slice of repository.StateStore the shell needs
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Shell owns the navigation state of one device
type Shell struct {
	mu     sync.Mutex
	state  State
	store  Store
	log    logger.Logger
	closed bool
}

// NewShell restores the last screen from store. Read failures are treated
// like an empty store.
func NewShell(ctx context.Context, store Store, log logger.Logger) *Shell {
	raw, found, err := store.Get(ctx, repository.KeyCurrentScreen)
	if err != nil {
		log.Warn("failed to read persisted screen", err)
		found = false
	}
	return &Shell{state: Restore(raw, found), store: store, log: log}
}

// State returns a snapshot of the current state
func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Screen returns the screen that should be drawn now
func (s *Shell) Screen() models.Screen {
	return Render(s.State())
}

// Dispatch applies e and persists the resulting screen. Persistence is best
// effort: a failed write is logged and the transition still happens.
// A closed shell ignores events.
func (s *Shell) Dispatch(ctx context.Context, e Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state
	}
	next := Transition(s.state, e)
	s.state = next
	if err := s.store.Set(ctx, repository.KeyCurrentScreen, next.Screen.Encode()); err != nil {
		s.log.Warn("failed to persist screen", "event", EventName(e), err)
	}
	return next
}

// Close detaches the shell from its store. No screen is written after
// Close returns.
func (s *Shell) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
