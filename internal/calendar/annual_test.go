package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/calendar/calendartest"
	"org-calendar-api/internal/model"
)

func TestProjectMarkersUsesRequestedYear(t *testing.T) {
	emps := []model.EmployeeMarkers{{
		ID: "u1", Name: "Mira",
		DOBDay: calendartest.Int(15), DOBMonth: calendartest.Int(6),
	}}

	got := calendar.ProjectMarkers(emps, mustWindow(t, "2030", ""))
	require.Len(t, got, 1)
	assert.Equal(t, "2030-06-15", got[0].Date)
	e := got[0].Entry.(calendar.MarkerEntry)
	assert.Equal(t, calendar.TypeBirthday, e.Type)
	assert.Equal(t, "🎂 Birthday: Mira", e.Title)
	assert.Equal(t, "All Day", e.Time)
	assert.Equal(t, calendar.KindBirthday, e.Kind())
}

func TestProjectMarkersOrderAndKinds(t *testing.T) {
	emps := []model.EmployeeMarkers{
		{ID: "u1", Name: "A", JoiningDay: calendartest.Int(1), JoiningMonth: calendartest.Int(2)},
		{ID: "u2", Name: "B", DOBDay: calendartest.Int(9), DOBMonth: calendartest.Int(9)},
	}

	got := calendar.ProjectMarkers(emps, mustWindow(t, "2025", ""))
	require.Len(t, got, 2)
	assert.Equal(t, calendar.KindBirthday, got[0].Entry.Kind())
	assert.Equal(t, "2025-09-09", got[0].Date)
	assert.Equal(t, calendar.KindAnniversary, got[1].Entry.Kind())
	assert.Equal(t, "2025-02-01", got[1].Date)
	assert.Equal(t, "🎉 Work Anniversary: A", got[1].Entry.Header().Title)
}

func TestProjectMarkersSkipsIncompletePairs(t *testing.T) {
	emps := []model.EmployeeMarkers{
		{ID: "u1", Name: "NoMonth", DOBDay: calendartest.Int(3)},
		{ID: "u2", Name: "NoDay", JoiningMonth: calendartest.Int(3)},
		{ID: "u3", Name: "Nothing"},
		{ID: "u4", Name: "Bogus", DOBDay: calendartest.Int(40), DOBMonth: calendartest.Int(1)},
	}
	assert.Empty(t, calendar.ProjectMarkers(emps, mustWindow(t, "2025", "")))
}

func TestProjectMarkersMonthWindow(t *testing.T) {
	emps := []model.EmployeeMarkers{
		{ID: "u1", Name: "June", DOBDay: calendartest.Int(15), DOBMonth: calendartest.Int(6)},
		{ID: "u2", Name: "July", DOBDay: calendartest.Int(15), DOBMonth: calendartest.Int(7)},
	}

	got := calendar.ProjectMarkers(emps, mustWindow(t, "2025", "6"))
	require.Len(t, got, 1)
	assert.Equal(t, "2025-06-15", got[0].Date)
}

func TestProjectMarkersLeapDay(t *testing.T) {
	emps := []model.EmployeeMarkers{
		{ID: "u1", Name: "Leap", DOBDay: calendartest.Int(29), DOBMonth: calendartest.Int(2)},
	}

	tests := []struct {
		year, month string
		want        string
	}{
		{"2025", "", "2025-02-28"},
		{"2025", "2", "2025-02-28"},
		{"2100", "", "2100-02-28"},
		{"2028", "", "2028-02-29"},
		{"2000", "2", "2000-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.year+"-"+tt.month, func(t *testing.T) {
			got := calendar.ProjectMarkers(emps, mustWindow(t, tt.year, tt.month))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Date)
		})
	}

	today, err := calendar.ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Len(t, calendar.ProjectMarkers(emps, calendar.DayWindow(today)), 1)
}

func TestEmployeeMarkersDerivedFromDates(t *testing.T) {
	dob, err := calendar.ParseDate("1990-11-03")
	require.NoError(t, err)
	m := model.Employee{ID: "u1", Name: "Kai", DOB: &dob}.Markers()

	require.NotNil(t, m.DOBDay)
	assert.Equal(t, 3, *m.DOBDay)
	assert.Equal(t, 11, *m.DOBMonth)
	assert.Nil(t, m.JoiningDay)
}
