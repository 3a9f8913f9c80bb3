package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"url-admin/pkg/cli/logger"
)

type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginSuccess
	LoginFailed
)

func (s LoginState) String() string {
	switch s {
	case LoginIdle:
		return "idle"
	case LoginSubmitting:
		return "submitting"
	case LoginSuccess:
		return "success"
	case LoginFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoginState(%d)", int(s))
	}
}

// LoginFlow submits credentials once per Submit and stores the token on
// success. A failed attempt leaves the flow ready for the next submit.
type LoginFlow struct {
	api       LoginAPI
	session   SessionStore
	onSuccess func()

	mu     sync.Mutex
	state  LoginState
	errMsg string
}

// NewLoginFlow requires onSuccess: it is how the caller learns the user is
// authenticated.
func NewLoginFlow(api LoginAPI, session SessionStore, onSuccess func()) (*LoginFlow, error) {
	if api == nil || session == nil {
		return nil, errors.New("login flow needs an API client and a session")
	}
	if onSuccess == nil {
		return nil, errors.New("login flow needs an onSuccess callback")
	}
	return &LoginFlow{api: api, session: session, onSuccess: onSuccess}, nil
}

// State returns the current state and the message of the last failure.
func (f *LoginFlow) State() (LoginState, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.errMsg
}

// Submit attempts one login. Empty credentials are rejected without a
// request.
func (f *LoginFlow) Submit(ctx context.Context, username, password string) error {
	f.mu.Lock()
	if f.state == LoginSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if strings.TrimSpace(username) == "" || password == "" {
		err := errors.New("username and password are required")
		f.state, f.errMsg = LoginFailed, err.Error()
		f.mu.Unlock()
		return err
	}
	f.state, f.errMsg = LoginSubmitting, ""
	f.mu.Unlock()

	resp, err := f.api.Login(ctx, username, password)
	if err == nil {
		if err = f.session.SetToken(resp.Token); err != nil {
			err = fmt.Errorf("failed to save session: %w", err)
		}
	}
	if err != nil {
		logger.LogError(err, "login failed for %q", username)
		f.mu.Lock()
		f.state, f.errMsg = LoginFailed, err.Error()
		f.mu.Unlock()
		return err
	}

	logger.Info("login succeeded for %q", username)
	f.mu.Lock()
	f.state = LoginSuccess
	f.mu.Unlock()

	f.onSuccess()
	return nil
}
