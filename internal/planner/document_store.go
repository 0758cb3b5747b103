package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"planbook/internal/storage"
)

// DefaultDocumentTitle is substituted when a document is saved with a blank
// title.
const DefaultDocumentTitle = "Untitled Document"

// DocumentPatch carries the fields of a document save request. Nil pointer
// fields are absent: on update the existing value is retained.
type DocumentPatch struct {
	ID      string
	Title   *string
	Content *string
}

// DocumentStore owns the in-memory document collection. It is a pure data
// structure with no locking; the Service serializes access.
type DocumentStore struct {
	docs []storage.Document
}

// NewDocumentStore creates a DocumentStore seeded with the given collection.
func NewDocumentStore(docs []storage.Document) *DocumentStore {
	return &DocumentStore{docs: docs}
}

// Save creates or updates a document and returns the persisted record.
//
// When the patch carries no identity, a fresh UUID is assigned and the new
// document is prepended so the collection stays newest-first. When it
// carries an identity that matches an existing record, the supplied fields
// are merged in place: absent fields, the record's position, and its
// original CreatedAt are all preserved. An identity that matches nothing
// inserts a new record under that identity.
func (s *DocumentStore) Save(patch DocumentPatch, now time.Time) storage.Document {
	if patch.ID != "" {
		for i := range s.docs {
			if s.docs[i].ID != patch.ID {
				continue
			}
			if patch.Title != nil {
				s.docs[i].Title = normalizeTitle(*patch.Title, DefaultDocumentTitle)
			}
			if patch.Content != nil {
				s.docs[i].Content = *patch.Content
			}
			return s.docs[i]
		}
	}

	doc := storage.Document{
		ID:        patch.ID,
		Title:     normalizeTitle(deref(patch.Title), DefaultDocumentTitle),
		Content:   deref(patch.Content),
		CreatedAt: now,
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	s.docs = append([]storage.Document{doc}, s.docs...)
	return doc
}

// Delete removes the document with the given identity. It reports whether a
// document was removed; deleting an unknown identity is a no-op.
func (s *DocumentStore) Delete(id string) bool {
	for i := range s.docs {
		if s.docs[i].ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the document with the given identity.
func (s *DocumentStore) Get(id string) (storage.Document, bool) {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return s.docs[i], true
		}
	}
	return storage.Document{}, false
}

// List returns a copy of the collection in stored (newest-first) order.
func (s *DocumentStore) List() []storage.Document {
	out := make([]storage.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func normalizeTitle(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
