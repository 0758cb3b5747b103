package handlers

import (
	"context"
	"database/sql"
	"testing"

	"planbook/internal/planner"
	"planbook/internal/storage"
)

func newTestPlanner(t *testing.T) (*planner.Service, *sql.DB) {
	t.Helper()

	tmpDir := t.TempDir()
	db, err := storage.New(tmpDir + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	return planner.NewService(context.Background(), storage.NewCollectionRepo(db)), db
}

func strp(s string) *string { return &s }
