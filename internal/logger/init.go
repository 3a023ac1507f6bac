package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger installs the configured handler as the process default logger.
func InitLogger(config Config) {
	InitLoggerWithWriter(config, os.Stdout)
}

// InitLoggerWithWriter installs the configured handler writing to w. Tests
// use this to capture output.
func InitLoggerWithWriter(config Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs(config.BaseAttributes())
	slog.SetDefault(slog.New(handler))
}

// Package-level convenience wrappers over the default logger.

// Debug logs at debug level.
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
