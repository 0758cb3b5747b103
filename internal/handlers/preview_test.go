package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"planbook/internal/planner"
)

func TestPreviewHandler(t *testing.T) {
	svc, _ := newTestPlanner(t)
	ctx := context.Background()

	doc := svc.SaveDocument(ctx, planner.DocumentPatch{
		Title:   strp("Notes"),
		Content: strp("# Heading\n\nSome **bold** text"),
	})

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/documents/{id}/preview", NewPreviewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID+"/preview", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("preview status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Error("markdown not rendered")
	}
	if !strings.Contains(body, "<title>Notes</title>") {
		t.Error("page title missing")
	}
}

func TestPreviewHandler_NotFound(t *testing.T) {
	svc, _ := newTestPlanner(t)

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/documents/{id}/preview", NewPreviewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/documents/ghost/preview", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("preview status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
