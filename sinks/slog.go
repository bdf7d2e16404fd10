package sinks

import (
	"context"
	"log/slog"

	"github.com/willibrandon/tap/core"
)

// LevelVerbose sits below slog.LevelDebug.
const LevelVerbose = slog.LevelDebug - 4

// SlogSink forwards tap events to a *slog.Logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink writing to logger, or to slog.Default when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Emit writes the event as a single record.
func (s *SlogSink) Emit(event *core.Event) {
	ctx := context.Background()
	level := slogLevel(event.Level)
	if !s.logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		slog.Any("value", event.Printable()),
		slog.String("type", event.Type.Runtime),
		slog.String("kind", event.Type.Kind),
	}
	if event.Type.Static != event.Type.Runtime {
		attrs = append(attrs, slog.String("static", event.Type.Static))
	}
	if event.HasLength() {
		attrs = append(attrs, slog.Int("length", event.Length))
	}
	for _, k := range sortedKeys(event.Properties) {
		attrs = append(attrs, slog.Any(k, event.Properties[k]))
	}

	s.logger.LogAttrs(ctx, level, labelOf(event), attrs...)
}

// Close does nothing; slog handlers own their writers.
func (s *SlogSink) Close() error {
	return nil
}

func slogLevel(level core.Level) slog.Level {
	switch level {
	case core.VerboseLevel:
		return LevelVerbose
	case core.DebugLevel:
		return slog.LevelDebug
	case core.InformationLevel:
		return slog.LevelInfo
	case core.WarningLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
