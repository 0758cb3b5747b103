package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"planbook/internal/contextutil"
	"planbook/internal/planner"
	"planbook/internal/storage"
)

const icsProductID = "-//planbook//Planner//EN"

// ICSHandler exports the event collection as an iCalendar feed so the
// planner can be subscribed to from an external calendar client.
type ICSHandler struct {
	planner *planner.Service
	now     func() time.Time
}

// NewICSHandler creates a new ICSHandler.
func NewICSHandler(svc *planner.Service) *ICSHandler {
	return &ICSHandler{planner: svc, now: time.Now}
}

// Export writes every event as an all-day VEVENT.
func (h *ICSHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	events := h.planner.Events(ctx)
	docs := make(map[string]storage.Document)
	for _, doc := range h.planner.Documents(ctx) {
		docs[doc.ID] = doc
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=planbook.ics")

	var b strings.Builder
	fmt.Fprintln(&b, "BEGIN:VCALENDAR")
	fmt.Fprintln(&b, "VERSION:2.0")
	fmt.Fprintf(&b, "PRODID:%s\n", icsProductID)
	fmt.Fprintln(&b, "X-WR-CALNAME:Planbook")
	fmt.Fprintln(&b, "CALSCALE:GREGORIAN")

	stamp := h.now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		date, err := time.Parse("2006-01-02", event.Date)
		if err != nil {
			logger.WarnContext(ctx, "skipping event with unparseable date", "event_id", event.ID, "date", event.Date)
			continue
		}

		fmt.Fprintln(&b, "BEGIN:VEVENT")
		fmt.Fprintf(&b, "UID:%s@planbook\n", event.ID)
		fmt.Fprintf(&b, "DTSTAMP:%s\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\n", date.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\n", date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s\n", escapeICS(event.Title))
		if doc, ok := docs[event.DocumentID]; ok {
			fmt.Fprintf(&b, "DESCRIPTION:Attached document: %s\n", escapeICS(doc.Title))
		}
		fmt.Fprintln(&b, "END:VEVENT")
	}

	fmt.Fprintln(&b, "END:VCALENDAR")

	if _, err := io.WriteString(w, b.String()); err != nil {
		logger.ErrorContext(ctx, "failed to write calendar export", "error", err)
	}
}

// escapeICS escapes text per RFC 5545: backslash, comma, semicolon, and
// newline are significant in property values.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
