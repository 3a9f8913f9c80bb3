package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndValidate(t *testing.T) {
	s, err := NewAuthService("alice", "secret", []byte("k"), time.Hour)
	require.NoError(t, err)

	token, err := s.Login("alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	sub, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestAuthService_BadCredentials(t *testing.T) {
	s, err := NewAuthService("alice", "secret", nil, 0)
	require.NoError(t, err)

	_, err = s.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("bob", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	s, err := NewAuthService("alice", "secret", []byte("k1"), time.Hour)
	require.NoError(t, err)
	other, err := NewAuthService("alice", "secret", []byte("k2"), time.Hour)
	require.NoError(t, err)

	foreign, err := other.Login("alice", "secret")
	require.NoError(t, err)

	_, err = s.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	s, err := NewAuthService("alice", "secret", []byte("k"), time.Minute)
	require.NoError(t, err)

	issued := time.Now()
	s.now = func() time.Time { return issued }
	token, err := s.Login("alice", "secret")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAuthService_RequiresCredentials(t *testing.T) {
	_, err := NewAuthService("", "x", nil, 0)
	assert.Error(t, err)
}
