// Package events provides the in-process pub/sub bus connecting the
// dashboard's file watcher to its SSE fan-out and activity archive.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the dashboard.
const (
	TypeSpecUpdate     = "spec-update"
	TypeSteeringUpdate = "steering-update"
	TypeSpecRemoved    = "spec-removed"
)

// Event is one observed change to a watched project.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Project string    `json:"project,omitempty"`
	Spec    string    `json:"spec,omitempty"`
	Payload any       `json:"payload,omitempty"`
	Time    time.Time `json:"time"`
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

type handlerEntry struct {
	id      int
	handler Handler
}

// Bus is a thread-safe in-process event bus. Subscriptions are per event
// type; the wildcard "*" receives everything.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]handlerEntry
	nextID   int
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]handlerEntry)}
}

// Publish stamps the event with an id and timestamp when absent and delivers
// it to subscribers of its type and of "*".
func (b *Bus) Publish(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}

	b.mu.RLock()
	targets := make([]Handler, 0, len(b.handlers[ev.Type])+len(b.handlers["*"]))
	for _, e := range b.handlers[ev.Type] {
		targets = append(targets, e.handler)
	}
	for _, e := range b.handlers["*"] {
		targets = append(targets, e.handler)
	}
	b.mu.RUnlock()

	for _, h := range targets {
		h(ev)
	}
}

// Subscribe registers a handler for the given event type ("*" for all).
// The returned function unsubscribes the handler.
func (b *Bus) Subscribe(eventType string, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], handlerEntry{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		entries := b.handlers[eventType]
		filtered := entries[:0]
		for _, e := range entries {
			if e.id != id {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = filtered
		}
	}
}
