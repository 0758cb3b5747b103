package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"planbook/internal/handlers"
	"planbook/internal/planner"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Planner   *planner.Service
	DB        *sql.DB
	IndexHTML string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(CORS)
	r.Use(LoggerMiddleware)

	documentHandler := handlers.NewDocumentHandler(deps.Planner)
	eventHandler := handlers.NewEventHandler(deps.Planner)
	calendarHandler := handlers.NewCalendarHandler(deps.Planner)
	icsHandler := handlers.NewICSHandler(deps.Planner)
	previewHandler := handlers.NewPreviewHandler(deps.Planner)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Post("/", documentHandler.Save)
			r.Post("/schedule", documentHandler.Schedule)
			r.Delete("/{id}", documentHandler.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Add)
			r.Delete("/{id}", eventHandler.Delete)
		})

		r.Get("/calendar", calendarHandler.Month)
		r.Get("/calendar.ics", icsHandler.Export)
	})

	// Document pages opened in their own browsing surface
	r.Get("/documents/{id}/print", documentHandler.Print)
	r.Method(http.MethodGet, "/documents/{id}/preview", previewHandler)

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(deps.IndexHTML))
	})

	return r
}
