package core

// LogValue is an optional interface that types can implement to provide
// custom log representations. When a tapped value implements it, sinks
// render the returned value instead of the value itself. The tapped value
// is still returned to the caller untouched.
type LogValue interface {
	// LogValue returns the value to be logged.
	LogValue() any
}
