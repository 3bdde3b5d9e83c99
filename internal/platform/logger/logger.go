package logger

import (
	"log/slog"
	"os"
)

// New returns the structured logger the rest of the service injects.
// JSON on stdout so log collectors need no parsing configuration.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
