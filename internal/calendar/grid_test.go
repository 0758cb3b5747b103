package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planbook/internal/storage"
)

func TestMonth_Add(t *testing.T) {
	tests := []struct {
		name  string
		start Month
		delta int
		want  Month
	}{
		{name: "forward within year", start: Month{2024, time.March}, delta: 1, want: Month{2024, time.April}},
		{name: "december wraps forward", start: Month{2024, time.December}, delta: 1, want: Month{2025, time.January}},
		{name: "january wraps backward", start: Month{2024, time.January}, delta: -1, want: Month{2023, time.December}},
		{name: "large delta", start: Month{2024, time.June}, delta: 19, want: Month{2026, time.January}},
		{name: "zero delta", start: Month{2024, time.June}, delta: 0, want: Month{2024, time.June}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Add(tt.delta))
		})
	}
}

func TestMonth_Add_TwelveForwardReturnsToSameMonth(t *testing.T) {
	cursor := Month{2024, time.January}
	for i := 0; i < 12; i++ {
		cursor = cursor.Add(1)
	}
	assert.Equal(t, Month{2025, time.January}, cursor)
}

func TestMonth_Days(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2024, time.February}, 29}, // leap year
		{Month{2023, time.February}, 28},
		{Month{2024, time.March}, 31},
		{Month{2024, time.April}, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.month.Days(), "days in %s", tt.month.Label())
	}
}

func TestMonth_Label(t *testing.T) {
	assert.Equal(t, "March 2024", Month{2024, time.March}.Label())
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-03-05", DateKey(2024, time.March, 5))
	assert.Equal(t, "0800-12-31", DateKey(800, time.December, 31))
}

func TestKeyFor_IgnoresUTCOffset(t *testing.T) {
	// 2024-03-15 00:30 at UTC-10: the UTC instant is already 2024-03-15
	// 10:30Z, but a UTC round-trip of 23:30 the other way would shift the
	// day. The key must come from the local components alone.
	loc := time.FixedZone("UTC-10", -10*60*60)
	early := time.Date(2024, time.March, 15, 0, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-15", KeyFor(early))

	// 23:30 at UTC+10 is 13:30Z the same day; still the local day
	locEast := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, locEast)
	assert.Equal(t, "2024-03-15", KeyFor(late))
}

func TestGrid_March2024(t *testing.T) {
	// March 2024 starts on a Friday (5 leading blanks) and has 31 days:
	// 5 + 31 = 36, padded to 42 cells (6 rows).
	cells := Grid(Month{2024, time.March}, nil)

	require.Len(t, cells, 42)

	for i := 0; i < 5; i++ {
		assert.Nil(t, cells[i], "cell %d should be leading blank", i)
	}
	for day := 1; day <= 31; day++ {
		cell := cells[4+day]
		require.NotNil(t, cell, "cell for day %d", day)
		assert.Equal(t, day, cell.Day)
		assert.Equal(t, DateKey(2024, time.March, day), cell.Date)
	}
	for i := 36; i < 42; i++ {
		assert.Nil(t, cells[i], "cell %d should be trailing blank", i)
	}
}

func TestGrid_FiveRowMonth(t *testing.T) {
	// April 2024 starts on a Monday (1 leading blank) and has 30 days:
	// 1 + 30 = 31, padded to 35 cells (5 rows), not a fixed 42.
	cells := Grid(Month{2024, time.April}, nil)
	assert.Len(t, cells, 35)
}

func TestGrid_SixRowMonth(t *testing.T) {
	// June 2024 starts on a Saturday (6 leading blanks) and has 30 days:
	// 6 + 30 = 36, padded to 42 cells.
	cells := Grid(Month{2024, time.June}, nil)
	assert.Len(t, cells, 42)
}

func TestGrid_ExactWeeks(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days: exactly 4 rows,
	// no padding at all.
	cells := Grid(Month{2026, time.February}, nil)
	assert.Len(t, cells, 28)
	assert.NotNil(t, cells[0])
	assert.NotNil(t, cells[27])
}

func TestGrid_AttachesEvents(t *testing.T) {
	index := map[string][]storage.Event{
		"2024-03-15": {
			{ID: "a", Date: "2024-03-15", Title: "Review"},
			{ID: "b", Date: "2024-03-15", Title: "Follow-up"},
		},
		"2024-04-15": {
			{ID: "other-month", Date: "2024-04-15", Title: "Elsewhere"},
		},
	}

	cells := Grid(Month{2024, time.March}, index)

	matched := 0
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		if cell.Day == 15 {
			require.Len(t, cell.Events, 2)
			assert.Equal(t, "Review", cell.Events[0].Title)
			assert.Equal(t, "Follow-up", cell.Events[1].Title)
			matched++
			continue
		}
		assert.Empty(t, cell.Events, "day %d should carry no events", cell.Day)
	}
	assert.Equal(t, 1, matched, "event must appear in exactly one cell")
}

func TestGrid_OneCellPerDayInOrder(t *testing.T) {
	cells := Grid(Month{2025, time.August}, nil)

	wantDay := 1
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		assert.Equal(t, wantDay, cell.Day)
		wantDay++
	}
	assert.Equal(t, 32, wantDay, "August must produce days 1..31")
}
