package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger logs to w, or to stderr when w is nil. Stdout is left to the
// answer display and to the MCP stdio transport.
func NewJSONLogger(w io.Writer, service, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
