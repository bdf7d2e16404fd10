package core

import (
	"reflect"
	"time"
)

// Descriptor describes the type of a tapped value.
type Descriptor struct {
	// Static is the name of the type parameter the value was tapped as.
	Static string

	// Runtime is the name of the dynamic type of the value. It differs from
	// Static when the value was tapped through an interface type.
	Runtime string

	// Kind is the reflect kind of the dynamic value, e.g. "slice" or "struct".
	Kind string
}

// String returns the runtime type name.
func (d Descriptor) String() string {
	return d.Runtime
}

// Event is the transient record emitted for a single tap.
type Event struct {
	// Timestamp is when the value passed through.
	Timestamp time.Time

	// Level is the severity the tap was configured with.
	Level Level

	// Label names the value line, "arg" by default.
	Label string

	// Value is the caller's value. Sinks must treat it as read-only.
	Value any

	// Type describes the value's static and runtime type.
	Type Descriptor

	// Length is len(value) for slice and map taps, -1 otherwise.
	Length int

	// Properties holds extra properties configured on the tapper.
	Properties map[string]any
}

// HasLength reports whether the event carries a length.
func (e *Event) HasLength() bool {
	return e.Length >= 0
}

// Printable returns the value sinks should render. Values implementing
// LogValue are replaced by their LogValue result, except nil pointers,
// which are returned as is.
func (e *Event) Printable() any {
	if lv, ok := e.Value.(LogValue); ok && !IsNilPointer(e.Value) {
		return lv.LogValue()
	}
	return e.Value
}

// AddPropertyIfAbsent adds a property to the event if it doesn't already exist.
func (e *Event) AddPropertyIfAbsent(name string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	if _, exists := e.Properties[name]; !exists {
		e.Properties[name] = value
	}
}

// IsNilPointer reports whether v is a non-nil interface holding a nil pointer.
func IsNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
