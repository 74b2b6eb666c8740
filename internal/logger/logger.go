package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates the application logger writing JSON to stdout. LOG_LEVEL
// selects the minimum level (debug, info, warn, error); info by default.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
