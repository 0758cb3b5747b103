package planner

import (
	"github.com/google/uuid"

	"planbook/internal/storage"
)

// DefaultEventTitle is substituted when an event is added with a blank title.
const DefaultEventTitle = "Untitled"

// EventStore owns the in-memory event collection. Like DocumentStore it is a
// pure data structure; the Service serializes access.
type EventStore struct {
	events []storage.Event
}

// NewEventStore creates an EventStore seeded with the given collection.
func NewEventStore(events []storage.Event) *EventStore {
	return &EventStore{events: events}
}

// Add appends a new event with a fresh UUID and returns it. Collection order
// is not significant; events are accessed by date index or identity.
func (s *EventStore) Add(date, title, documentID string) storage.Event {
	event := storage.Event{
		ID:         uuid.New().String(),
		Date:       date,
		Title:      normalizeTitle(title, DefaultEventTitle),
		DocumentID: documentID,
	}
	s.events = append(s.events, event)
	return event
}

// Delete removes the event with the given identity. It reports whether an
// event was removed; deleting an unknown identity is a no-op.
func (s *EventStore) Delete(id string) bool {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// ClearDocumentRefs clears the document reference on every event pointing at
// the given identity, leaving the events otherwise intact. It returns the
// number of events touched. Called from document deletion so no dangling
// reference is ever retained.
func (s *EventStore) ClearDocumentRefs(documentID string) int {
	if documentID == "" {
		return 0
	}
	cleared := 0
	for i := range s.events {
		if s.events[i].DocumentID == documentID {
			s.events[i].DocumentID = ""
			cleared++
		}
	}
	return cleared
}

// Get returns the event with the given identity.
func (s *EventStore) Get(id string) (storage.Event, bool) {
	for i := range s.events {
		if s.events[i].ID == id {
			return s.events[i], true
		}
	}
	return storage.Event{}, false
}

// List returns a copy of the collection in insertion order.
func (s *EventStore) List() []storage.Event {
	out := make([]storage.Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByDate groups events by date key, preserving insertion order within each
// day. The index is derived on demand and never persisted, so it cannot
// diverge from the collection.
func (s *EventStore) ByDate() map[string][]storage.Event {
	index := make(map[string][]storage.Event)
	for _, event := range s.events {
		index[event.Date] = append(index[event.Date], event)
	}
	return index
}
