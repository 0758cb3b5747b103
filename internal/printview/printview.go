// Package printview renders a document as a standalone printable page.
package printview

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"planbook/internal/storage"
)

// pageTmpl is the full printable page. html/template escapes the title and
// body, so user text containing markup renders as literal text. The content
// block keeps whitespace and line breaks via pre-wrap.
var pageTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}} - PDF</title>
  <style>
    @page { size: A4; margin: 20mm; }
    body {
      font-family: Inter, system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;
      color: #111;
    }
    h1 { margin: 0 0 8px; font-size: 22px; }
    .meta { color: #666; font-size: 12px; margin-bottom: 16px; }
    .content { white-space: pre-wrap; line-height: 1.5; font-size: 14px; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">Created: {{.CreatedAt}}</div>
  <div class="content">{{.Content}}</div>
{{- if .AutoPrint}}
  <script>window.addEventListener('load', function () { window.print(); });</script>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title     string
	CreatedAt string
	Content   string
	AutoPrint bool
}

// Renderer produces printable pages for documents.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render writes the printable page for doc to w. A zero CreatedAt falls back
// to the current time. When autoPrint is set the page asks the host to open
// its print dialog on load; a host that refuses simply shows the page.
func (r *Renderer) Render(w io.Writer, doc storage.Document, autoPrint bool) error {
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	data := pageData{
		Title:     doc.Title,
		CreatedAt: createdAt.Format("Jan 2, 2006 3:04 PM"),
		Content:   doc.Content,
		AutoPrint: autoPrint,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render printable page: %w", err)
	}
	return nil
}
