package core

// Sink receives tap events. It is a write-only collaborator: Emit has no
// result, and implementations report their own failures through selflog.
type Sink interface {
	// Emit writes the event to the sink's destination.
	Emit(event *Event)

	// Close releases any resources held by the sink.
	Close() error
}
