// Package calendar builds the month grid view of the event collection.
package calendar

import (
	"fmt"
	"time"

	"planbook/internal/storage"
)

// Month is the grid cursor: a year plus month, no day component.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t, read from t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves the cursor by delta whole months, wrapping year boundaries
// (December +1 is January of the next year). time.Date normalizes
// out-of-range months, which handles any delta in one step.
func (m Month) Add(delta int) Month {
	t := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Days returns the number of days in the month. Day zero of the following
// month is this month's last day.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of day 1 (Sunday = 0), which is the
// number of leading blank cells in the grid.
func (m Month) FirstWeekday() time.Weekday {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Label returns the cursor as a display string, e.g. "March 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// DateKey builds the canonical date key for a calendar day directly from its
// components. The key never round-trips through a UTC timestamp, so the same
// civil day yields the same key regardless of the host's UTC offset.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// KeyFor returns the date key of the civil day t falls on in its own
// location.
func KeyFor(t time.Time) string {
	return DateKey(t.Year(), t.Month(), t.Day())
}

// Cell is one day slot in the month grid. Blank padding slots are nil.
type Cell struct {
	Day    int             `json:"day"`
	Date   string          `json:"date"`
	Events []storage.Event `json:"events"`
}

// Grid renders the month as a row-major sequence of week cells: leading nil
// cells up to the weekday of day 1, one cell per day carrying that day's
// events, then trailing nil cells padding to a complete week. The grid is 5
// or 6 rows depending on how the month falls; it is never padded past the
// last partial week.
func Grid(m Month, eventsByDate map[string][]storage.Event) []*Cell {
	leading := int(m.FirstWeekday())
	days := m.Days()

	cells := make([]*Cell, 0, leading+days+6)
	for i := 0; i < leading; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= days; day++ {
		key := DateKey(m.Year, m.Month, day)
		cells = append(cells, &Cell{
			Day:    day,
			Date:   key,
			Events: eventsByDate[key],
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}
	return cells
}
