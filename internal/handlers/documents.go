package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"planbook/internal/contextutil"
	"planbook/internal/planner"
	"planbook/internal/printview"
	"planbook/internal/storage"
)

// DocumentHandler handles HTTP requests for documents.
type DocumentHandler struct {
	planner  *planner.Service
	renderer *printview.Renderer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc *planner.Service) *DocumentHandler {
	return &DocumentHandler{
		planner:  svc,
		renderer: printview.NewRenderer(),
	}
}

// SaveDocumentRequest represents the save request payload. Pointer fields
// distinguish absent from empty: absent fields keep their prior value on
// update.
type SaveDocumentRequest struct {
	ID      string  `json:"id,omitempty"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ScheduleRequest represents the save-and-schedule payload: a document plus
// the day it should be pinned to.
type ScheduleRequest struct {
	SaveDocumentRequest
	Date       string `json:"date"`
	EventTitle string `json:"eventTitle,omitempty"`
}

// ScheduleResponse carries both records created by a save-and-schedule
// action.
type ScheduleResponse struct {
	Document storage.Document `json:"document"`
	Event    storage.Event    `json:"event"`
}

// List returns the document collection, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.planner.Documents(r.Context()))
}

// Save creates or updates a document and returns the persisted record. The
// response always carries the assigned identity so callers can reference the
// document immediately.
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := h.planner.SaveDocument(ctx, planner.DocumentPatch{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	logger.InfoContext(ctx, "document saved", "document_id", doc.ID)

	writeJSON(w, http.StatusOK, doc)
}

// Delete removes a document and clears the reference on any event pointing
// at it. Unknown identities are a no-op.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	h.planner.DeleteDocument(ctx, id)
	w.WriteHeader(http.StatusNoContent)
}

// Schedule saves a document and creates a calendar event referencing it as a
// single action.
func (h *DocumentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, event, err := h.planner.SaveAndSchedule(ctx, planner.DocumentPatch{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
	}, req.Date, req.EventTitle)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			return
		}
		logger.ErrorContext(ctx, "schedule failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to schedule document")
		return
	}
	logger.InfoContext(ctx, "document scheduled", "document_id", doc.ID, "event_id", event.ID, "date", event.Date)

	writeJSON(w, http.StatusCreated, ScheduleResponse{Document: doc, Event: event})
}

// Print serves the standalone printable page for a document. A request for
// an unknown document is silently ignored with an empty response; the print
// surface shows nothing rather than an error page.
func (h *DocumentHandler) Print(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	doc, ok := h.planner.Document(ctx, id)
	if !ok {
		logger.InfoContext(ctx, "print request for unknown document ignored", "document_id", id)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	autoPrint := r.URL.Query().Get("autoprint") == "1"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, doc, autoPrint); err != nil {
		logger.ErrorContext(ctx, "failed to render printable page", "document_id", id, "error", err)
	}
}
