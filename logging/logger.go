// Package logging configures the shared zap logger for kjcore. The console
// always gets colored human-readable output; when the config asks for it,
// the same stream is teed into a timestamped file under the log directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kyelljensen/kjcore/config"
)

var (
	mu     sync.RWMutex
	logger = zap.Must(basicLogger(zapcore.InfoLevel))
)

// basicLogger builds the console-only fallback used before Configure runs.
func basicLogger(level zapcore.Level) (*zap.Logger, error) {
	core := zapcore.NewCore(consoleEncoder(true), zapcore.Lock(os.Stderr), level)
	return zap.New(core), nil
}

func consoleEncoder(color bool) zapcore.Encoder {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encCfg)
}

// ParseLevel maps a config log level string onto a zap level. Unknown values
// fall back to info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "critical":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Configure replaces the package logger according to cfg. With
// SaveLogsToFile set, a log file named kjcore_log_<timestamp>.log is created
// in the configured log directory.
func Configure(cfg *config.Config) error {
	level := ParseLevel(cfg.LogLevel)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(true), zapcore.Lock(os.Stderr), level),
	}

	if cfg.SaveLogsToFile {
		if err := os.MkdirAll(cfg.LogDirectory, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		stamp := time.Now().Format("2006-01-02_15-04-05")
		path := filepath.Join(cfg.LogDirectory, fmt.Sprintf("%s_log_%s.log", config.PackageName, stamp))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder(false), zapcore.AddSync(file), level))
	}

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(zapcore.NewTee(cores...))
	return nil
}

// L returns the package logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a child logger for a subsystem, e.g. "database".
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	_ = L().Sync()
}
