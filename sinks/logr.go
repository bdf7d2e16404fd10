package sinks

import (
	"github.com/go-logr/logr"

	"github.com/willibrandon/tap/core"
)

// LogrSink forwards tap events to a logr.Logger.
//
// Levels map onto logr verbosity:
//   - Verbose → V(2)
//   - Debug → V(1)
//   - Information, Warning → V(0), Warning adds "severity"="warning"
//   - Error → Error with a nil error
type LogrSink struct {
	logger logr.Logger
}

// NewLogrSink creates a sink writing to logger.
func NewLogrSink(logger logr.Logger) *LogrSink {
	return &LogrSink{logger: logger}
}

// Emit writes the event.
func (l *LogrSink) Emit(event *core.Event) {
	kv := []any{
		"value", event.Printable(),
		"type", event.Type.Runtime,
		"kind", event.Type.Kind,
	}
	if event.Type.Static != event.Type.Runtime {
		kv = append(kv, "static", event.Type.Static)
	}
	if event.HasLength() {
		kv = append(kv, "length", event.Length)
	}
	for _, k := range sortedKeys(event.Properties) {
		kv = append(kv, k, event.Properties[k])
	}

	msg := labelOf(event)
	switch event.Level {
	case core.VerboseLevel:
		l.logger.V(2).Info(msg, kv...)
	case core.DebugLevel:
		l.logger.V(1).Info(msg, kv...)
	case core.InformationLevel:
		l.logger.Info(msg, kv...)
	case core.WarningLevel:
		l.logger.Info(msg, append(kv, "severity", "warning")...)
	default:
		l.logger.Error(nil, msg, kv...)
	}
}

// Close does nothing; logr has no flush contract.
func (l *LogrSink) Close() error {
	return nil
}
