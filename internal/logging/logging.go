// Package logging builds the slog logger used across dicegame, rendered by
// pterm.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
)

// Level names accepted by ParseLevel.
const (
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelTrace = "trace"
)

// ParseLevel maps a level name to the pterm log level.
func ParseLevel(name string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelError:
		return pterm.LogLevelError, nil
	case LevelWarn, "warning":
		return pterm.LogLevelWarn, nil
	case LevelInfo, "":
		return pterm.LogLevelInfo, nil
	case LevelDebug:
		return pterm.LogLevelDebug, nil
	case LevelTrace:
		return pterm.LogLevelTrace, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// TraceEnabled reports whether name asks for per-round output.
func TraceEnabled(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), LevelTrace)
}

// New returns a slog logger writing to w through pterm's slog handler.
// Trace output is emitted at slog's debug level, which the trace level
// also prints.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := pterm.DefaultLogger.WithLevel(lvl).WithWriter(w)
	return slog.New(pterm.NewSlogHandler(logger)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
