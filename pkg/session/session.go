// Package session owns the single bearer token of the console process.
package session

import (
	"context"
	"fmt"
	"sync"

	"url-admin/pkg/config"
)

// TokenKey is the fixed name the token is stored under.
const TokenKey = "token"

// Session caches the persisted token and writes changes through to its
// backend. It is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	token   string
	backend Backend
}

// New loads any persisted token from backend.
func New(ctx context.Context, backend Backend) (*Session, error) {
	token, ok, err := backend.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		token = ""
	}
	return &Session{token: token, backend: backend}, nil
}

// Open builds the backend selected in cfg and loads the session from it.
func Open(ctx context.Context, cfg *config.Config) (*Session, error) {
	var backend Backend
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		backend = NewMemoryBackend()
	case config.SessionBackendFile, config.SessionBackendSQLite:
		path, err := cfg.SessionPath()
		if err != nil {
			return nil, err
		}
		if cfg.Session.Backend == config.SessionBackendFile {
			backend = NewFileBackend(path)
			break
		}
		backend, err = OpenSQLiteBackend(ctx, path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown session backend: %q", cfg.Session.Backend)
	}

	s, err := New(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

// Token returns the current token; ok is false when there is no session.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken persists token and makes it the current session.
func (s *Session) SetToken(token string) error {
	if token == "" {
		return s.Clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Set(context.Background(), TokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.token = token
	return nil
}

// Clear destroys the session. The in-memory token is dropped even if the
// backend write fails, so no further request carries it.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := s.backend.Delete(context.Background(), TokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Close releases the backend.
func (s *Session) Close() error {
	return s.backend.Close()
}
