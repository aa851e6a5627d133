package services

import (
	"fmt"
	"sync"

	"showsync/internal/database"
	"showsync/pkg/logger"
)

// SessionState is the account session's lifecycle state.
type SessionState int

const (
	// SessionUnknown holds until the startup credential probe resolves.
	// Callers must not assume Unauthenticated during this window.
	SessionUnknown SessionState = iota
	SessionUnauthenticated
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session tracks whether the caller is authenticated and owns the bearer
// token used against the first-party service. One instance exists per
// running application and is passed by reference; every transition,
// including the initial resolution, explicitly notifies subscribers.
type Session struct {
	store  database.CredentialStore
	logger logger.Logger

	mu          sync.RWMutex
	state       SessionState
	token       string
	subscribers []func(SessionState)
}

// NewSession creates a session in the Unknown state. Call Resolve to probe
// the persisted credential.
func NewSession(store database.CredentialStore, log logger.Logger) *Session {
	return &Session{
		store:  store,
		logger: log,
		state:  SessionUnknown,
	}
}

// Subscribe registers fn to run after every state transition. Registration
// order is notification order.
func (s *Session) Subscribe(fn func(SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Resolve probes the persisted credential and settles the initial state.
// Run it once at startup, typically on its own goroutine.
func (s *Session) Resolve() {
	token, err := s.store.LoadCredential()
	if err != nil {
		s.logger.Errorf("[Session] failed to load credential: %v", err)
		token = ""
	}

	s.mu.Lock()
	if token != "" {
		s.state = SessionAuthenticated
		s.token = token
	} else {
		s.state = SessionUnauthenticated
		s.token = ""
	}
	state := s.state
	s.mu.Unlock()

	s.logger.Infof("[Session] resolved as %s", state)
	s.notify(state)
}

// Login persists the token and transitions to Authenticated.
func (s *Session) Login(token string) error {
	if err := s.store.SaveCredential(token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	s.mu.Lock()
	s.state = SessionAuthenticated
	s.token = token
	s.mu.Unlock()

	s.notify(SessionAuthenticated)
	return nil
}

// Logout discards the credential and transitions to Unauthenticated.
func (s *Session) Logout() error {
	if err := s.store.ClearCredential(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	s.mu.Lock()
	s.state = SessionUnauthenticated
	s.token = ""
	s.mu.Unlock()

	s.notify(SessionUnauthenticated)
	return nil
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a credential is held.
func (s *Session) IsAuthenticated() bool {
	return s.State() == SessionAuthenticated
}

// Token returns the held credential and whether one exists.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.state == SessionAuthenticated
}

func (s *Session) notify(state SessionState) {
	s.mu.RLock()
	subs := make([]func(SessionState), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
