package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"planbook/internal/storage"
)

// dateLayout is the canonical YYYY-MM-DD form of an event date key.
const dateLayout = "2006-01-02"

// Service owns the planner state: both in-memory collections plus their
// persistence. Every mutation runs under a single lock and writes through to
// storage before returning, so a document delete and its event reference
// cascade are never observable half-done.
type Service struct {
	mu     sync.Mutex
	docs   *DocumentStore
	events *EventStore
	store  storage.Collections
	logger *slog.Logger
	now    func() time.Time
}

// NewService loads both collections from storage and returns a ready
// Service. Missing or corrupt persisted data yields empty collections.
func NewService(ctx context.Context, store storage.Collections) *Service {
	return &Service{
		docs:   NewDocumentStore(store.LoadDocuments(ctx)),
		events: NewEventStore(store.LoadEvents(ctx)),
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// SaveDocument creates or updates a document and returns the persisted
// record, including the assigned identity for new documents.
func (s *Service) SaveDocument(ctx context.Context, patch DocumentPatch) storage.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs.Save(patch, s.now())
	s.persistDocuments(ctx)
	return doc
}

// DeleteDocument removes the document with the given identity and clears the
// document reference on every event that pointed at it. Deleting an unknown
// identity is a no-op.
func (s *Service) DeleteDocument(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.docs.Delete(id) {
		return
	}
	s.persistDocuments(ctx)

	if cleared := s.events.ClearDocumentRefs(id); cleared > 0 {
		s.logger.Info("cleared document references", "document_id", id, "events", cleared)
		s.persistEvents(ctx)
	}
}

// Document returns the document with the given identity.
func (s *Service) Document(ctx context.Context, id string) (storage.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs.Get(id)
}

// Documents returns the document collection, newest first.
func (s *Service) Documents(ctx context.Context) []storage.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs.List()
}

// AddEvent creates an event on the given day. The date must be a valid
// YYYY-MM-DD calendar day and a non-empty documentID must resolve to a
// stored document at write time.
func (s *Service) AddEvent(ctx context.Context, date, title, documentID string) (storage.Event, error) {
	key, err := normalizeDate(date)
	if err != nil {
		return storage.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if documentID != "" {
		if _, ok := s.docs.Get(documentID); !ok {
			return storage.Event{}, fmt.Errorf("%w: %s", ErrUnknownDocument, documentID)
		}
	}

	event := s.events.Add(key, title, documentID)
	s.persistEvents(ctx)
	return event, nil
}

// DeleteEvent removes the event with the given identity; unknown identities
// are a no-op.
func (s *Service) DeleteEvent(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.Delete(id) {
		s.persistEvents(ctx)
	}
}

// Events returns the event collection in insertion order.
func (s *Service) Events(ctx context.Context) []storage.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.List()
}

// EventsByDate returns the derived date index of the event collection.
func (s *Service) EventsByDate(ctx context.Context) map[string][]storage.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.ByDate()
}

// SaveAndSchedule saves a document and creates an event referencing it on
// the given day as one logical action. The event is built from the identity
// the save hands back directly; there is no re-read of storage and no
// matching by content.
func (s *Service) SaveAndSchedule(ctx context.Context, patch DocumentPatch, date, eventTitle string) (storage.Document, storage.Event, error) {
	key, err := normalizeDate(date)
	if err != nil {
		return storage.Document{}, storage.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs.Save(patch, s.now())
	s.persistDocuments(ctx)

	if eventTitle == "" {
		eventTitle = doc.Title
	}
	event := s.events.Add(key, eventTitle, doc.ID)
	s.persistEvents(ctx)

	return doc, event, nil
}

// persistDocuments writes the document collection through to storage.
// Persistence is fire-and-forget: a write failure is logged, not propagated,
// and the in-memory state stays authoritative.
func (s *Service) persistDocuments(ctx context.Context) {
	if err := s.store.SaveDocuments(ctx, s.docs.List()); err != nil {
		s.logger.Error("failed to persist documents", "error", err)
	}
}

func (s *Service) persistEvents(ctx context.Context) {
	if err := s.store.SaveEvents(ctx, s.events.List()); err != nil {
		s.logger.Error("failed to persist events", "error", err)
	}
}

// normalizeDate parses a YYYY-MM-DD date and re-formats it so stored keys
// are canonical. Parsing works on the literal components, never through a
// UTC timestamp, so the key cannot drift by a day near local midnight.
func normalizeDate(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t.Format(dateLayout), nil
}
