package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Successful operations are logged at Debug, failures at Warn.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("parse_id", event.ParseID),
		slog.String("op", event.Op.String()),
		slog.Uint64("count", uint64(event.Count)),
	}

	if event.Input != "" {
		attrs = append(attrs, slog.String("input", event.Input))
	}
	if event.KeyMatch != "" {
		attrs = append(attrs, slog.String("key_match", event.KeyMatch))
	}

	level := slog.LevelDebug
	if event.Error != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Key != "" {
			attrs = append(attrs, slog.String("error_key", event.Error.Key))
		}
		if event.Error.Offset != nil {
			attrs = append(attrs, slog.Int("error_offset", *event.Error.Offset))
		}
		if event.Error.Index != nil {
			attrs = append(attrs, slog.Int("error_index", *event.Error.Index))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "kvargs", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
