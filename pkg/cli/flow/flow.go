// Package flow holds the console's state machines: login, the URL list
// controller and the shell that switches between them. Nothing here renders;
// the tui package draws whatever these report.
package flow

import (
	"context"
	"errors"

	"url-admin/pkg/models"
)

// ErrInvalidURL is returned when a create or update is attempted with a URL
// that does not start with http:// or https://. No request is sent.
var ErrInvalidURL = errors.New("URL must start with http:// or https://")

// ErrBusy is returned when an action is submitted while the same action is
// still in flight.
var ErrBusy = errors.New("request already in progress")

// SessionStore is the single process-wide session slot.
type SessionStore interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// LoginAPI is the part of the backend client the login flow needs.
type LoginAPI interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
}

// URLAPI is the part of the backend client the URL list controller needs.
type URLAPI interface {
	ListURLs(ctx context.Context) ([]models.URLRecord, error)
	CreateURL(ctx context.Context, create models.URLCreate) (*models.URLRecord, error)
	UpdateURL(ctx context.Context, id string, update models.URLUpdate) (*models.URLRecord, error)
	DeleteURL(ctx context.Context, id string) error
	GetOnePublic(ctx context.Context) (*models.PublicURL, error)
}
