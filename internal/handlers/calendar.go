package handlers

import (
	"net/http"
	"strconv"
	"time"

	"planbook/internal/calendar"
	"planbook/internal/contextutil"
	"planbook/internal/planner"
)

// CalendarHandler serves the month grid view of the event collection.
type CalendarHandler struct {
	planner *planner.Service
	now     func() time.Time
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(svc *planner.Service) *CalendarHandler {
	return &CalendarHandler{planner: svc, now: time.Now}
}

// monthRef is a calendar cursor in the response payload.
type monthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthResponse represents the rendered month grid.
type MonthResponse struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Label    string           `json:"label"`
	Today    string           `json:"today"`
	Weekdays []string         `json:"weekdays"`
	Cells    []*calendar.Cell `json:"cells"`
	Prev     monthRef         `json:"prev"`
	Next     monthRef         `json:"next"`
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month renders the grid for the requested month. Without year/month query
// parameters it renders the current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	cursor := calendar.MonthOf(h.now())
	if yearStr, monthStr := r.URL.Query().Get("year"), r.URL.Query().Get("month"); yearStr != "" || monthStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1 || year > 9999 {
			logger.WarnContext(ctx, "invalid year parameter", "year", yearStr)
			writeError(w, http.StatusBadRequest, "Year must be between 1 and 9999")
			return
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			logger.WarnContext(ctx, "invalid month parameter", "month", monthStr)
			writeError(w, http.StatusBadRequest, "Month must be between 1 and 12")
			return
		}
		cursor = calendar.Month{Year: year, Month: time.Month(month)}
	}

	prev := cursor.Add(-1)
	next := cursor.Add(1)

	writeJSON(w, http.StatusOK, MonthResponse{
		Year:     cursor.Year,
		Month:    int(cursor.Month),
		Label:    cursor.Label(),
		Today:    calendar.KeyFor(h.now()),
		Weekdays: weekdayNames,
		Cells:    calendar.Grid(cursor, h.planner.EventsByDate(ctx)),
		Prev:     monthRef{Year: prev.Year, Month: int(prev.Month)},
		Next:     monthRef{Year: next.Year, Month: int(next.Month)},
	})
}
