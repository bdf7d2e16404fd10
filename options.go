package tap

import (
	"io"
	"os"
	"strings"

	"github.com/willibrandon/tap/core"
	"github.com/willibrandon/tap/sinks"
)

// Config mirrors the plain configuration record accepted by Tap.
type Config struct {
	// Log enables emission. It defaults to true unless TAP_LOG disables it.
	Log bool
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{Log: logByDefault}
}

// config holds the configuration for building a Tapper.
type config struct {
	log        bool
	level      core.Level
	label      string
	sinks      []core.Sink
	properties map[string]any
	typeNames  TypeNameOptions
}

// Option is a functional option for configuring a tap.
type Option func(*config)

// logByDefault is resolved once from TAP_LOG.
var logByDefault = ParseLogSetting(os.Getenv("TAP_LOG"))

// ParseLogSetting interprets a TAP_LOG value. "false", "0", "off" and "no"
// (case-insensitive, surrounding space ignored) disable logging; anything
// else, including the empty string, enables it.
func ParseLogSetting(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "off", "no":
		return false
	default:
		return true
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		log:        logByDefault,
		level:      core.DebugLevel,
		label:      "arg",
		properties: make(map[string]any),
		typeNames:  DefaultTypeNameOptions,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// WithLog enables or disables emission.
func WithLog(enabled bool) Option {
	return func(c *config) {
		c.log = enabled
	}
}

// WithConfig applies a Config value.
func WithConfig(cfg Config) Option {
	return WithLog(cfg.Log)
}

// WithSink adds a sink. Adding any sink replaces the default stdout console.
func WithSink(sink core.Sink) Option {
	return func(c *config) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// WithConsole adds a console sink writing to stdout.
func WithConsole() Option {
	return WithSink(sinks.NewConsoleSink())
}

// WithWriter adds a console sink writing to w.
func WithWriter(w io.Writer) Option {
	return WithSink(sinks.NewConsoleSinkWithWriter(w))
}

// WithLevel sets the level stamped on events. The default is Debug.
func WithLevel(level core.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithLabel sets the label of the value line. The default is "arg".
func WithLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.label = label
		}
	}
}

// WithProperty adds a property to every event.
func WithProperty(name string, value any) Option {
	return func(c *config) {
		c.properties[name] = value
	}
}

// WithProperties adds multiple properties.
func WithProperties(properties map[string]any) Option {
	return func(c *config) {
		for k, v := range properties {
			c.properties[k] = v
		}
	}
}

// WithTypeNameOptions controls how type names are rendered in descriptors.
func WithTypeNameOptions(opts TypeNameOptions) Option {
	return func(c *config) {
		c.typeNames = opts
	}
}
