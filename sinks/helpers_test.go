package sinks_test

import (
	"fmt"
	"time"

	"github.com/willibrandon/tap/core"
)

func newEvent(value any, runtime, kind string) *core.Event {
	return &core.Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     core.DebugLevel,
		Label:     "arg",
		Value:     value,
		Type:      core.Descriptor{Static: runtime, Runtime: runtime, Kind: kind},
		Length:    -1,
	}
}

// failingWriter always returns an error
type failingWriter struct {
	err   string
	calls int
}

func (f *failingWriter) Write(p []byte) (n int, err error) {
	f.calls++
	return 0, fmt.Errorf("%s", f.err)
}
