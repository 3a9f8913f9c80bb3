package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestInit_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(dir, "debug"))
	t.Cleanup(CloseLog)

	Log("refresh started: count=%d", 3)
	LogError(errors.New("boom"), "refresh failed")
	CloseLog()

	files, err := filepath.Glob(filepath.Join(dir, "cli-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh started: count=3")
	assert.Contains(t, string(data), `"error":"boom"`)
}

func TestLogBeforeInitIsNoop(t *testing.T) {
	CloseLog()
	assert.NotPanics(t, func() {
		Log("nothing %s", "here")
		LogError(errors.New("x"), "still nothing")
	})
}
