package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/model"
)

func dates(entries []calendar.DayEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date)
	}
	return out
}

func mustWindow(t *testing.T, year, month string) calendar.Window {
	t.Helper()
	w, err := calendar.ResolveWindow(year, month)
	require.NoError(t, err)
	return w
}

func TestExpandEventAcrossMonths(t *testing.T) {
	ev := model.CalendarEvent{ID: "e1", Title: "Offsite", StartDate: "2025-03-30", EndDate: "2025-04-02"}

	got, err := calendar.ExpandEvent(ev, mustWindow(t, "2025", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-30", "2025-03-31", "2025-04-01", "2025-04-02"}, dates(got))
	for _, e := range got {
		ee := e.Entry.(calendar.EventEntry)
		assert.True(t, ee.IsMultiDay)
		assert.Equal(t, "2025-03-30", ee.StartDate)
		assert.Equal(t, "2025-04-02", ee.EndDate)
	}
}

func TestExpandEventClippedToWindow(t *testing.T) {
	ev := model.CalendarEvent{ID: "e1", StartDate: "2025-03-30", EndDate: "2025-04-02"}

	got, err := calendar.ExpandEvent(ev, mustWindow(t, "2025", "4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-04-01", "2025-04-02"}, dates(got))

	got, err = calendar.ExpandEvent(ev, mustWindow(t, "2025", "3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-30", "2025-03-31"}, dates(got))
}

func TestExpandEventAcrossYearBoundary(t *testing.T) {
	ev := model.CalendarEvent{ID: "e1", StartDate: "2025-12-30", EndDate: "2026-01-02"}

	got, err := calendar.ExpandEvent(ev, mustWindow(t, "2026", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01", "2026-01-02"}, dates(got))
}

func TestExpandEventSingleDay(t *testing.T) {
	tests := []struct {
		name string
		ev   model.CalendarEvent
	}{
		{"same start and end", model.CalendarEvent{ID: "e", StartDate: "2025-06-10", EndDate: "2025-06-10"}},
		{"missing end", model.CalendarEvent{ID: "e", StartDate: "2025-06-10"}},
		{"inverted end", model.CalendarEvent{ID: "e", StartDate: "2025-06-10", EndDate: "2025-06-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.ExpandEvent(tt.ev, mustWindow(t, "2025", ""))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "2025-06-10", got[0].Date)
			assert.False(t, got[0].Entry.(calendar.EventEntry).IsMultiDay)
		})
	}
}

func TestExpandEventOutsideWindow(t *testing.T) {
	ev := model.CalendarEvent{ID: "e", StartDate: "2024-12-01", EndDate: "2024-12-05"}

	got, err := calendar.ExpandEvent(ev, mustWindow(t, "2025", ""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandEventMalformedDate(t *testing.T) {
	ev := model.CalendarEvent{ID: "e", StartDate: "2025-6-1", EndDate: "2025-06-03"}

	_, err := calendar.ExpandEvent(ev, mustWindow(t, "2025", ""))
	assert.Error(t, err)
}

func TestExpandEventDefaults(t *testing.T) {
	ev := model.CalendarEvent{ID: "e", StartDate: "2025-06-10"}

	got, err := calendar.ExpandEvent(ev, mustWindow(t, "2025", ""))
	require.NoError(t, err)
	ee := got[0].Entry.(calendar.EventEntry)
	assert.Equal(t, "Event", ee.Type)
	assert.Equal(t, model.DefaultEventColor, ee.Color)
	assert.NotNil(t, ee.Attendees)
}
