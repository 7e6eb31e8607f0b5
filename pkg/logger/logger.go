package logger

import (
	"fmt"
	"log/slog"
	"os"
)

type Loggers struct {
	DebugLogger *slog.Logger
	InfoLogger  *slog.Logger
	ErrorLogger *slog.Logger
}

// SetupLogger builds JSON loggers at the configured level. Info and debug
// records go to stdout, errors to stderr.
func SetupLogger(level string) (*Loggers, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	stdout := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	stderr := slog.New(slog.NewJSONHandler(os.Stderr, opts))

	return &Loggers{
		DebugLogger: stdout,
		InfoLogger:  stdout,
		ErrorLogger: stderr,
	}, nil
}
