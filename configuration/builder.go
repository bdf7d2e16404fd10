package configuration

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/willibrandon/tap"
	"github.com/willibrandon/tap/core"
	"github.com/willibrandon/tap/sinks"
)

// SinkFactory creates a sink from configuration.
type SinkFactory func(args map[string]any) (core.Sink, error)

// Builder builds a tap.Tapper from configuration.
type Builder struct {
	sinkFactories map[string]SinkFactory
}

// NewBuilder creates a new builder with the default sink factories:
// Console, Zap, Slog and Memory.
func NewBuilder() *Builder {
	b := &Builder{
		sinkFactories: make(map[string]SinkFactory),
	}

	b.RegisterSink("Console", createConsoleSink)
	b.RegisterSink("Zap", createZapSink)
	b.RegisterSink("Slog", createSlogSink)
	b.RegisterSink("Memory", func(map[string]any) (core.Sink, error) {
		return sinks.NewMemorySink(), nil
	})

	return b
}

// RegisterSink registers a sink factory, replacing any factory of the same name.
func (b *Builder) RegisterSink(name string, factory SinkFactory) {
	b.sinkFactories[name] = factory
}

// Options translates configuration into tap options.
func (b *Builder) Options(config *Configuration) ([]tap.Option, error) {
	if config == nil {
		return nil, errors.New("configuration is nil")
	}

	options := []tap.Option{tap.WithLog(config.LogEnabled())}

	if config.Tap.Level != "" {
		level, err := ParseLevel(config.Tap.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid level: %w", err)
		}
		options = append(options, tap.WithLevel(level))
	}

	if config.Tap.Label != "" {
		options = append(options, tap.WithLabel(config.Tap.Label))
	}

	if tn := config.Tap.TypeNames; tn != nil {
		options = append(options, tap.WithTypeNameOptions(tap.TypeNameOptions{
			IncludePackage:    tn.IncludePackage,
			PackageDepth:      tn.PackageDepth,
			Prefix:            tn.Prefix,
			Suffix:            tn.Suffix,
			SimplifyAnonymous: tn.SimplifyAnonymous,
		}))
	}

	// Sinks built before a failing entry are closed so their writers and
	// loggers do not outlive the error.
	var built []core.Sink
	for _, sinkConfig := range config.Tap.WriteTo {
		sink, err := b.createSink(sinkConfig)
		if err != nil {
			err = fmt.Errorf("failed to create sink %s: %w", sinkConfig.Name, err)
			for _, s := range built {
				if cerr := s.Close(); cerr != nil {
					err = errors.Join(err, fmt.Errorf("close %T: %w", s, cerr))
				}
			}
			return nil, err
		}
		built = append(built, sink)
		options = append(options, tap.WithSink(sink))
	}

	if len(config.Tap.Properties) > 0 {
		options = append(options, tap.WithProperties(config.Tap.Properties))
	}

	return options, nil
}

// Build creates a Tapper from configuration.
func (b *Builder) Build(config *Configuration) (*tap.Tapper, error) {
	options, err := b.Options(config)
	if err != nil {
		return nil, err
	}
	return tap.New(options...), nil
}

func (b *Builder) createSink(config SinkConfiguration) (core.Sink, error) {
	factory, ok := b.sinkFactories[config.Name]
	if !ok {
		return nil, fmt.Errorf("unknown sink: %s", config.Name)
	}
	return factory(config.Args)
}

func outputWriter(name string) (io.Writer, error) {
	switch name {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return nil, fmt.Errorf("unknown output: %s", name)
	}
}

func createConsoleSink(args map[string]any) (core.Sink, error) {
	w, err := outputWriter(GetString(args, "output", "stdout"))
	if err != nil {
		return nil, err
	}
	sink := sinks.NewConsoleSinkWithWriter(w)
	sink.ShowProperties(GetBool(args, "showProperties", false))
	sink.ShowStaticType(GetBool(args, "showStaticType", false))
	return sink, nil
}

func createZapSink(args map[string]any) (core.Sink, error) {
	var cfg zap.Config
	switch preset := GetString(args, "preset", "production"); preset {
	case "production":
		cfg = zap.NewProductionConfig()
	case "development":
		cfg = zap.NewDevelopmentConfig()
	case "nop":
		return sinks.NewZapSink(zap.NewNop()), nil
	default:
		return nil, fmt.Errorf("unknown zap preset: %s", preset)
	}

	level, err := zapcore.ParseLevel(GetString(args, "level", "debug"))
	if err != nil {
		return nil, fmt.Errorf("invalid zap level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if output := GetString(args, "output", ""); output != "" {
		cfg.OutputPaths = []string{output}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return sinks.NewZapSink(logger), nil
}

func createSlogSink(args map[string]any) (core.Sink, error) {
	w, err := outputWriter(GetString(args, "output", "stdout"))
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: sinks.LevelVerbose}
	var handler slog.Handler
	switch format := GetString(args, "format", "text"); format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown slog format: %s", format)
	}
	return sinks.NewSlogSink(slog.New(handler)), nil
}
