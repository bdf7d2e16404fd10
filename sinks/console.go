package sinks

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/willibrandon/tap/core"
	"github.com/willibrandon/tap/selflog"
)

// ConsoleSink writes tap events as plain lines:
//
//	arg: [Hey Hello World]
//	type: []string
//	Length: 3
type ConsoleSink struct {
	output         io.Writer
	mu             sync.Mutex
	showProperties bool
	showStatic     bool
}

// NewConsoleSink creates a new console sink that writes to stdout.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{output: os.Stdout}
}

// NewConsoleSinkWithWriter creates a new console sink with a custom writer.
func NewConsoleSinkWithWriter(w io.Writer) *ConsoleSink {
	return &ConsoleSink{output: w}
}

// SetOutput replaces the destination writer.
func (cs *ConsoleSink) SetOutput(w io.Writer) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.output = w
}

// ShowProperties enables or disables property display.
func (cs *ConsoleSink) ShowProperties(show bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.showProperties = show
}

// ShowStaticType adds a "static:" line when the tapped type parameter
// differs from the runtime type, e.g. a string tapped as any.
func (cs *ConsoleSink) ShowStaticType(show bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.showStatic = show
}

// Emit writes the event to the console. Write failures are reported to selflog.
func (cs *ConsoleSink) Emit(event *core.Event) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.output == nil {
		return
	}

	var buf bytes.Buffer
	cs.formatEvent(&buf, event)

	if _, err := cs.output.Write(buf.Bytes()); err != nil {
		selflog.Printf("[console] write failed: %v", err)
	}
}

// Close releases any resources held by the sink.
func (cs *ConsoleSink) Close() error {
	return nil
}

func (cs *ConsoleSink) formatEvent(buf *bytes.Buffer, event *core.Event) {
	label := event.Label
	if label == "" {
		label = "arg"
	}

	fmt.Fprintf(buf, "%s: %s\n", label, FormatValue(event.Printable()))
	fmt.Fprintf(buf, "type: %s\n", event.Type.Runtime)
	if cs.showStatic && event.Type.Static != event.Type.Runtime {
		fmt.Fprintf(buf, "static: %s\n", event.Type.Static)
	}
	if event.HasLength() {
		fmt.Fprintf(buf, "Length: %d\n", event.Length)
	}

	if cs.showProperties && len(event.Properties) > 0 {
		for _, k := range sortedKeys(event.Properties) {
			fmt.Fprintf(buf, "  %s=%s\n", k, FormatValue(event.Properties[k]))
		}
	}
}

// FormatValue renders a value for line-oriented output. Strings are written
// verbatim, structs include their field names.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	}

	// A nil pointer with a value-receiver String method would panic.
	if core.IsNilPointer(v) {
		return "<nil>"
	}

	switch val := v.(type) {
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprintf("%+v", val)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
