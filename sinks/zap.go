package sinks

import (
	"errors"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/willibrandon/tap/core"
)

// ZapSink forwards tap events to a zap logger. Each event becomes one entry
// whose message is the event label and whose fields describe the value.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink writing to logger. A nil logger is replaced by
// zap.NewNop so the sink is always safe to use.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Emit writes the event if the logger is enabled for its level.
func (z *ZapSink) Emit(event *core.Event) {
	ce := z.logger.Check(zapLevel(event.Level), labelOf(event))
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.Any("value", event.Printable()),
		zap.String("type", event.Type.Runtime),
		zap.String("kind", event.Type.Kind),
	}
	if event.Type.Static != event.Type.Runtime {
		fields = append(fields, zap.String("static", event.Type.Static))
	}
	if event.HasLength() {
		fields = append(fields, zap.Int("length", event.Length))
	}
	for _, k := range sortedKeys(event.Properties) {
		fields = append(fields, zap.Any(k, event.Properties[k]))
	}

	ce.Write(fields...)
}

// Close flushes the logger. EINVAL and ENOTTY are ignored: they are what
// fsync returns for terminals and pipes such as stdout and stderr.
func (z *ZapSink) Close() error {
	err := z.logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

func zapLevel(level core.Level) zapcore.Level {
	switch level {
	case core.VerboseLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InformationLevel:
		return zapcore.InfoLevel
	case core.WarningLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func labelOf(event *core.Event) string {
	if event.Label == "" {
		return "arg"
	}
	return event.Label
}
