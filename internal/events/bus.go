package events

import (
	"fmt"
)

// Bus manages event distribution.
//
// Dispatch happens in registration order. That ordering is load-bearing:
// abilities that must see a modified roll before applying their own effect
// rely on attach order matching intended priority.
type Bus struct {
	listeners map[EventType][]Listener
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]Listener),
	}
}

// Register subscribes a listener to every event type it declares.
// Registering the same listener ID twice for an event type is a no-op.
func (b *Bus) Register(listener Listener) {
	for _, eventType := range listener.Events() {
		if b.isRegistered(eventType, listener.ID()) {
			continue
		}
		b.listeners[eventType] = append(b.listeners[eventType], listener)
	}
}

// RegisterFor subscribes a listener to specific event types, regardless of
// what it declares. Used for rest-only listeners like resources.
func (b *Bus) RegisterFor(listener Listener, eventTypes ...EventType) {
	for _, eventType := range eventTypes {
		if b.isRegistered(eventType, listener.ID()) {
			continue
		}
		b.listeners[eventType] = append(b.listeners[eventType], listener)
	}
}

// Unregister removes a listener from all event types
func (b *Bus) Unregister(listenerID string) {
	for eventType, listeners := range b.listeners {
		for i, l := range listeners {
			if l.ID() != listenerID {
				continue
			}
			// Preserve order: shift instead of swap-and-truncate
			b.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			break
		}
	}
}

// Emit sends an event to every listener registered for its type, in
// registration order. A handler error aborts the remaining dispatch and is
// returned: a partially-applied attack state is worse than a hard failure.
func (b *Bus) Emit(event Event) error {
	// Snapshot so handlers can register/unregister during dispatch
	registered := b.listeners[event.EventType()]
	listeners := make([]Listener, len(registered))
	copy(listeners, registered)

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed handling %s: %w", listener.ID(), event.EventType(), err)
		}
	}

	return nil
}

// HasListeners reports whether any listener is registered for an event type
func (b *Bus) HasListeners(eventType EventType) bool {
	return len(b.listeners[eventType]) > 0
}

// CountListeners returns the number of listeners for an event type
func (b *Bus) CountListeners(eventType EventType) int {
	return len(b.listeners[eventType])
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.listeners = make(map[EventType][]Listener)
}

func (b *Bus) isRegistered(eventType EventType, listenerID string) bool {
	for _, l := range b.listeners[eventType] {
		if l.ID() == listenerID {
			return true
		}
	}
	return false
}
