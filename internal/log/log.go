// Package log configures structured logging for clai using log/slog.
package log

import (
	"io"
	"log/slog"

	"github.com/smetj/clai/internal/redact"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - debug mode:  DEBUG and above
//   - normal mode: WARN and above
//   - quiet mode:  ERROR only
//
// Stderr is reserved for failure reasons, so nothing below WARN is shown
// unless asked for. Debug wins over quiet. String values pass through
// redact before they are written.
func Setup(w io.Writer, debug, quiet bool) {
	var level slog.Level
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
	slog.SetDefault(slog.New(handler))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(redact.String(a.Value.String()))
	}
	return a
}
