package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Storage keys for the two persisted collections. The version suffix allows
// a future schema change to use a fresh key instead of clobbering data an
// older build still understands.
const (
	DocumentsKey = "docs_v1"
	EventsKey    = "events_v1"
)

// Collections defines the interface for reading and writing the persisted
// document and event collections.
type Collections interface {
	// LoadDocuments returns the persisted document collection. A missing or
	// corrupt entry yields an empty collection, never an error.
	LoadDocuments(ctx context.Context) []Document
	// LoadEvents returns the persisted event collection. A missing or
	// corrupt entry yields an empty collection, never an error.
	LoadEvents(ctx context.Context) []Event
	// SaveDocuments replaces the persisted document collection.
	SaveDocuments(ctx context.Context, docs []Document) error
	// SaveEvents replaces the persisted event collection.
	SaveEvents(ctx context.Context, events []Event) error
}

// CollectionRepo persists the two collections as named JSON array entries in
// the collections table. It implements the Collections interface.
type CollectionRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCollectionRepo creates a new CollectionRepo.
func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db, logger: slog.Default()}
}

// LoadDocuments returns the persisted document collection.
func (r *CollectionRepo) LoadDocuments(ctx context.Context) []Document {
	var docs []Document
	if !r.load(ctx, DocumentsKey, &docs) || docs == nil {
		return []Document{}
	}
	return docs
}

// LoadEvents returns the persisted event collection.
func (r *CollectionRepo) LoadEvents(ctx context.Context) []Event {
	var events []Event
	if !r.load(ctx, EventsKey, &events) || events == nil {
		return []Event{}
	}
	return events
}

// SaveDocuments replaces the persisted document collection.
func (r *CollectionRepo) SaveDocuments(ctx context.Context, docs []Document) error {
	if docs == nil {
		docs = []Document{}
	}
	return r.put(ctx, DocumentsKey, docs)
}

// SaveEvents replaces the persisted event collection.
func (r *CollectionRepo) SaveEvents(ctx context.Context, events []Event) error {
	if events == nil {
		events = []Event{}
	}
	return r.put(ctx, EventsKey, events)
}

// load reads the named entry into dest. It returns false when the entry is
// absent or does not decode, in which case dest is left untouched; callers
// substitute an empty collection. Corrupt data must never block startup.
func (r *CollectionRepo) load(ctx context.Context, key string, dest any) bool {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM collections WHERE key = ?", key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		r.logger.Warn("failed to read collection, substituting empty", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		r.logger.Warn("corrupt collection entry, substituting empty", "key", key, "error", err)
		return false
	}
	return true
}

// put upserts the named entry with the JSON encoding of value.
func (r *CollectionRepo) put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO collections (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET
		 value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}

	return nil
}
