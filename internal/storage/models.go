package storage

import "time"

// Document represents a user-authored text document.
type Document struct {
	ID        string    `json:"id"`        // UUID, assigned at first save
	Title     string    `json:"title"`     // Defaults to "Untitled Document" when blank
	Content   string    `json:"content"`   // Free text body
	CreatedAt time.Time `json:"createdAt"` // Set once at creation, never overwritten
}

// Event represents a calendar entry for a specific day, optionally linked
// to a document.
type Event struct {
	ID         string `json:"id"`                   // UUID, assigned at creation
	Date       string `json:"date"`                 // Local date key, YYYY-MM-DD
	Title      string `json:"title"`                // Defaults to "Untitled" when blank
	DocumentID string `json:"documentId,omitempty"` // Weak reference to Document.ID; empty means none
}
