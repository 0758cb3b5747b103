package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"planbook/internal/contextutil"
	"planbook/internal/planner"
)

// PreviewHandler renders a document body as markdown for on-screen reading.
// This is a presentation surface separate from the printable page, which
// always treats the body as plain text.
type PreviewHandler struct {
	planner  *planner.Service
	markdown goldmark.Markdown
	template *template.Template
}

// previewPageData holds template data for preview pages.
type previewPageData struct {
	Title   string
	Content template.HTML
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(svc *planner.Service) *PreviewHandler {
	tmpl := template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 760px;
      line-height: 1.7;
      color: #1c1c1c;
    }
    h1 { margin-top: 0; }
    article { border-top: 1px solid #e4e4e4; padding-top: 1rem; }
    blockquote {
      border-left: 4px solid #d0d0d0;
      padding-left: 1rem;
      margin-left: 0;
      color: #555;
    }
    pre {
      background: #f5f5f5;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 6px;
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &PreviewHandler{
		planner: svc,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested document as HTML.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	doc, ok := h.planner.Document(ctx, id)
	if !ok {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	content, err := h.renderMarkdown([]byte(doc.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "document_id", id, "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, previewPageData{
		Title:   doc.Title,
		Content: template.HTML(content),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to execute preview template", "document_id", id, "error", err)
	}
}

func (h *PreviewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
