package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"planbook/internal/contextutil"
	"planbook/internal/planner"
)

// EventHandler handles HTTP requests for calendar events.
type EventHandler struct {
	planner *planner.Service
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *planner.Service) *EventHandler {
	return &EventHandler{planner: svc}
}

// AddEventRequest represents the add-event payload.
type AddEventRequest struct {
	Date       string `json:"date"`
	Title      string `json:"title"`
	DocumentID string `json:"documentId,omitempty"`
}

// Add creates an event on the given day, optionally attached to a document.
func (h *EventHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.planner.AddEvent(ctx, req.Date, req.Title, req.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		case errors.Is(err, planner.ErrUnknownDocument):
			writeError(w, http.StatusBadRequest, "Attached document does not exist")
		default:
			logger.ErrorContext(ctx, "add event failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add event")
		}
		return
	}
	logger.InfoContext(ctx, "event added", "event_id", event.ID, "date", event.Date)

	writeJSON(w, http.StatusCreated, event)
}

// Delete removes an event; unknown identities are a no-op.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.planner.DeleteEvent(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// List returns the full event collection.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.planner.Events(r.Context()))
}
