package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	logger  = zap.NewNop().Sugar()
	logFile *os.File
)

// Init opens a timestamped log file under dir and routes all logging there.
// The TUI owns stdout, so nothing is written to the terminal. Until Init
// succeeds, logging is a no-op.
func Init(dir, level string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		ParseLevel(level),
	)

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar().Named("cli")
	logFile = f
	return nil
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(lvl string) zapcore.Level {
	switch lvl {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Log writes a debug log message
func Log(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debugf(format, v...)
}

// Info writes an info log message
func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Infof(format, v...)
}

// LogError writes an error log message
func LogError(err error, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Errorw(fmt.Sprintf(format, v...), "error", err)
}

// CloseLog flushes and closes the log file
func CloseLog() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = zap.NewNop().Sugar()
}

func closeLocked() {
	_ = logger.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
