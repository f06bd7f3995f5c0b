package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the process logger. It discards everything until Init is called.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Output io.Writer  // Default: os.Stderr
	Level  slog.Level // Minimum level
	JSON   bool       // Use the JSON handler instead of text
	Quiet  bool       // Discard all output
}

// Init replaces L according to opts and returns it.
func Init(opts Options) *slog.Logger {
	if opts.Quiet {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return L
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(out, handlerOpts))
	} else {
		L = slog.New(slog.NewTextHandler(out, handlerOpts))
	}
	return L
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
