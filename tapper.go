package tap

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/willibrandon/tap/core"
	"github.com/willibrandon/tap/selflog"
	"github.com/willibrandon/tap/sinks"
)

// defaultConsole is shared by every Tapper built without sinks.
var defaultConsole = sinks.NewConsoleSink()

// std serves Tap calls made without options.
var std = New()

// Tapper is an immutable bundle of sinks and options. It is safe for
// concurrent use; it holds no mutable state of its own.
type Tapper struct {
	enabled    bool
	level      core.Level
	label      string
	sinks      []core.Sink
	properties map[string]any
	typeNames  TypeNameOptions
}

// New creates a Tapper. Without WithSink, WithConsole or WithWriter it
// writes to stdout.
func New(opts ...Option) *Tapper {
	c := newConfig(opts)
	if len(c.sinks) == 0 {
		c.sinks = []core.Sink{defaultConsole}
	}
	return &Tapper{
		enabled:    c.log,
		level:      c.level,
		label:      c.label,
		sinks:      c.sinks,
		properties: c.properties,
		typeNames:  c.typeNames,
	}
}

// Enabled reports whether the tapper emits events. A nil Tapper is disabled.
func (tp *Tapper) Enabled() bool {
	return tp != nil && tp.enabled
}

// Close closes every sink and returns their errors joined.
func (tp *Tapper) Close() error {
	if tp == nil {
		return nil
	}
	var errs []error
	for _, sink := range tp.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", sink, err))
		}
	}
	return errors.Join(errs...)
}

// Pass returns value unchanged after emitting it to tp's sinks.
func Pass[T any](tp *Tapper, value T) T {
	if tp.Enabled() {
		tp.emit(value, Describe(value, tp.typeNames), -1)
	}
	return value
}

// PassSlice is Pass for slices; the event carries len(s).
func PassSlice[S ~[]E, E any](tp *Tapper, s S) S {
	if tp.Enabled() {
		tp.emit(s, Describe(s, tp.typeNames), len(s))
	}
	return s
}

// PassMap is Pass for maps; the event carries len(m).
func PassMap[M ~map[K]V, K comparable, V any](tp *Tapper, m M) M {
	if tp.Enabled() {
		tp.emit(m, Describe(m, tp.typeNames), len(m))
	}
	return m
}

func (tp *Tapper) emit(value any, desc core.Descriptor, length int) {
	event := &core.Event{
		Timestamp: time.Now(),
		Level:     tp.level,
		Label:     tp.label,
		Value:     value,
		Type:      desc,
		Length:    length,
	}
	if len(tp.properties) > 0 {
		event.Properties = maps.Clone(tp.properties)
	}

	for _, sink := range tp.sinks {
		emitTo(sink, event)
	}
}

// emitTo isolates a single sink so that its panic cannot reach the caller
// or starve the remaining sinks.
func emitTo(sink core.Sink, event *core.Event) {
	defer func() {
		if r := recover(); r != nil {
			selflog.Printf("[tap] sink %T panicked: %v", sink, r)
		}
	}()
	sink.Emit(event)
}

// Typed is a Tapper bound to a single value type.
type Typed[T any] struct {
	tp *Tapper
}

// For binds tp to the type T.
func For[T any](tp *Tapper) *Typed[T] {
	return &Typed[T]{tp: tp}
}

// Tap returns value unchanged after emitting it.
func (t *Typed[T]) Tap(value T) T {
	return Pass(t.tp, value)
}

// Func returns t.Tap as a Func value.
func (t *Typed[T]) Func() Func[T] {
	return t.Tap
}
