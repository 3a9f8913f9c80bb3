package flow

import (
	"sync"

	"url-admin/pkg/cli/logger"
)

// Shell decides whether the login form or the URL list is shown.
type Shell struct {
	session SessionStore

	mu            sync.Mutex
	authenticated bool
}

// NewShell starts authenticated when the session already holds a token.
func NewShell(session SessionStore) *Shell {
	_, ok := session.Token()
	return &Shell{session: session, authenticated: ok}
}

func (s *Shell) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LoggedIn is the login-success signal.
func (s *Shell) LoggedIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
}

// SessionExpired is the controller's logout signal; the session has
// already been cleared by then.
func (s *Shell) SessionExpired() {
	logger.Info("session expired, returning to login")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// Logout clears the session and returns to the login form. The shell is
// unauthenticated afterwards even if the session could not be persisted.
func (s *Shell) Logout() error {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
	return s.session.Clear()
}
