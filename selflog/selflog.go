// Package selflog reports failures that tap swallows.
//
// Tapping a value never fails from the caller's point of view. When a sink
// cannot write, panics, or fails to close, the problem is routed here and
// nowhere else. selflog is disabled by default, so those failures are
// silent unless a destination is configured.
//
// # Usage
//
// Enable selflog to write to stderr:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// Enable with a custom handler:
//
//	selflog.EnableFunc(func(msg string) {
//	    t.Log(msg)
//	})
//
// # Format
//
// Messages are formatted as:
//
//	2026-01-29T15:30:45Z [component] message details
//
// # Environment Variable
//
// Set TAP_SELFLOG to enable on startup:
//   - "stderr" - log to standard error
//   - "stdout" - log to standard output
//   - "/path/to/file" - append to the specified file
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// destination is either a writer or a callback, never both.
type destination struct {
	w  io.Writer
	fn func(string)
}

var current atomic.Pointer[destination]

// Enable activates self-logging to the provided writer.
// The writer should be thread-safe or wrapped with Sync().
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	current.Store(&destination{w: w})
}

// EnableFunc activates self-logging using a callback function.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	current.Store(&destination{fn: fn})
}

// Disable deactivates self-logging.
func Disable() {
	current.Store(nil)
}

// IsEnabled returns true if selflog is currently enabled.
func IsEnabled() bool {
	return current.Load() != nil
}

// Printf logs an internal diagnostic message. The format string should
// start with the component in square brackets, e.g. "[console] write failed: %v".
// Printf itself never fails; write errors on the destination are dropped.
func Printf(format string, args ...any) {
	d := current.Load()
	if d == nil {
		return
	}

	line := time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	if d.fn != nil {
		d.fn(line)
		return
	}
	_, _ = fmt.Fprintln(d.w, line)
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync wraps a writer to make it thread-safe.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// enableFromEnv applies a TAP_SELFLOG value.
func enableFromEnv(dest string) {
	switch dest {
	case "":
		return
	case "stderr":
		Enable(os.Stderr)
	case "stdout":
		Enable(os.Stdout)
	default:
		if f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			Enable(Sync(f))
		}
	}
}

func init() {
	enableFromEnv(os.Getenv("TAP_SELFLOG"))
}
