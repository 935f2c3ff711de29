package log

import (
	"io"
	"log/slog"
)

// NewWithWriter constructs a JSON slog.Logger at the provided level that
// writes to w. Commands that print results on stdout log to stderr instead
func NewWithWriter(
	w io.Writer, service, env, version string, lvl slog.Level,
) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})

	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("env", env),
		slog.String("version", version))
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a configured level name to a slog.Level
func ParseLevel(name string) (slog.Level, bool) {
	lvl, ok := levels[name]
	return lvl, ok
}
