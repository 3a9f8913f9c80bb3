package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"url-admin/pkg/config"
)

func backends(t *testing.T) map[string]func(t *testing.T) Backend {
	t.Helper()
	dir := t.TempDir()
	return map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend { return NewMemoryBackend() },
		"file": func(t *testing.T) Backend {
			return NewFileBackend(filepath.Join(dir, t.Name(), "session.toml"))
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := OpenSQLiteBackend(context.Background(), ":memory:")
			require.NoError(t, err)
			return b
		},
	}
}

func TestSession_Lifecycle(t *testing.T) {
	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			backend := newBackend(t)
			t.Cleanup(func() { _ = backend.Close() })

			s, err := New(context.Background(), backend)
			require.NoError(t, err)

			_, ok := s.Token()
			assert.False(t, ok, "cold start without persisted token")

			require.NoError(t, s.SetToken("abc"))
			tok, ok := s.Token()
			assert.True(t, ok)
			assert.Equal(t, "abc", tok)

			v, found, err := backend.Get(context.Background(), TokenKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "abc", v)

			require.NoError(t, s.Clear())
			_, ok = s.Token()
			assert.False(t, ok)

			_, found, err = backend.Get(context.Background(), TokenKey)
			require.NoError(t, err)
			assert.False(t, found)

			// clearing twice is harmless
			require.NoError(t, s.Clear())
		})
	}
}

func TestSession_SetEmptyTokenClears(t *testing.T) {
	s, err := New(context.Background(), NewMemoryBackend())
	require.NoError(t, err)

	require.NoError(t, s.SetToken("abc"))
	require.NoError(t, s.SetToken(""))
	_, ok := s.Token()
	assert.False(t, ok)
}

func TestFileBackend_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.toml")

	first, err := New(context.Background(), NewFileBackend(path))
	require.NoError(t, err)
	require.NoError(t, first.SetToken("persisted"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := New(context.Background(), NewFileBackend(path))
	require.NoError(t, err)
	tok, ok := second.Token()
	assert.True(t, ok)
	assert.Equal(t, "persisted", tok)
}

func TestSQLiteBackend_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	b1, err := OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	first, err := New(ctx, b1)
	require.NoError(t, err)
	require.NoError(t, first.SetToken("one"))
	require.NoError(t, first.SetToken("two")) // upsert
	require.NoError(t, first.Close())

	b2, err := OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b2.Close() })
	second, err := New(ctx, b2)
	require.NoError(t, err)
	tok, _ := second.Token()
	assert.Equal(t, "two", tok)
}

func TestFileBackend_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = "), 0600))

	_, err := New(context.Background(), NewFileBackend(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load session")
}

func TestOpen_SelectsBackendFromConfig(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Session.Backend = config.SessionBackendSQLite
	cfg.Session.Path = filepath.Join(dir, "s.db")
	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("x"))
	require.NoError(t, s.Close())
	_, err = os.Stat(cfg.Session.Path)
	require.NoError(t, err)

	cfg.Session.Backend = config.SessionBackendFile
	cfg.Session.Path = filepath.Join(dir, "s.toml")
	s, err = Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("y"))
	data, err := os.ReadFile(cfg.Session.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), TokenKey)
	assert.Contains(t, string(data), "y")

	cfg.Session.Backend = "cookie"
	_, err = Open(ctx, cfg)
	require.Error(t, err)
}
