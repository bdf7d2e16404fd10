package sinks

import (
	"maps"
	"sync"

	"github.com/willibrandon/tap/core"
)

// MemorySink stores tap events in memory for testing purposes.
type MemorySink struct {
	events []core.Event
	closed bool
	mu     sync.RWMutex
}

// NewMemorySink creates a new memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		events: make([]core.Event, 0),
	}
}

// Emit stores the event in memory.
func (m *MemorySink) Emit(event *core.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eventCopy := *event
	if event.Properties != nil {
		eventCopy.Properties = maps.Clone(event.Properties)
	}

	m.events = append(m.events, eventCopy)
}

// Close marks the sink closed. Events are kept.
func (m *MemorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MemorySink) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Events returns a copy of all stored events.
func (m *MemorySink) Events() []core.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]core.Event, len(m.events))
	copy(result, m.events)
	return result
}

// Clear removes all stored events.
func (m *MemorySink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}

// Count returns the number of stored events.
func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// LastEvent returns the most recent event, or nil if no events.
func (m *MemorySink) LastEvent() *core.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.events) == 0 {
		return nil
	}

	event := m.events[len(m.events)-1]
	return &event
}
