package client

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend answers 401 to an
// authenticated call. Callers must drop the session when they see it.
var ErrUnauthorized = errors.New("unauthorized")

// Messages used for failures that carry no backend message
const (
	msgInvalidCredentials = "Invalid credentials"
	msgNoURL              = "no url"
	msgNetwork            = "network error: unable to reach server"
	msgInvalidResponse    = "invalid response from server"
)

// RequestError is any failure other than ErrUnauthorized: a non-success
// status, a transport failure or an undecodable response. Message is meant
// to be shown to the user verbatim.
type RequestError struct {
	Message    string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Detail is the message plus status and cause, for logs.
func (e *RequestError) Detail() string {
	s := e.Message
	if e.StatusCode != 0 {
		s = fmt.Sprintf("%s (status %d)", s, e.StatusCode)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

// IsUnauthorized reports whether err is, or wraps, ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
