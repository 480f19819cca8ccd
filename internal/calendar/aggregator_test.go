package calendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/calendar/calendartest"
	"org-calendar-api/internal/model"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func fixture() *calendartest.Store {
	return &calendartest.Store{
		Holidays: []model.Holiday{
			{ID: "h1", Name: "Founders Day", Date: "2025-04-01", Type: model.HolidayRestricted},
			{ID: "h2", Name: "New Year", Date: "2026-01-01"},
		},
		Events: []model.CalendarEvent{
			{ID: "e1", Title: "Offsite", StartDate: "2025-03-30", EndDate: "2025-04-02", Scope: model.ScopeGlobal},
			{ID: "e2", Title: "Board prep", StartDate: "2025-04-01", EndDate: "2025-04-01",
				Scope: model.ScopePrivate, CreatedBy: &model.Ref{ID: otherID},
				Attendees: []model.Ref{{ID: hostID}, {ID: attendeeID}}},
		},
		Meetings: []model.Meeting{standup(), func() model.Meeting {
			m := standup()
			m.ID, m.Date = "m2", "2025-04-01"
			return m
		}()},
		Tasks: []model.Task{
			{ID: "t1", OwnerID: hostID, Title: "File report", Date: "2025-04-01", Type: model.TaskPersonal},
			{ID: "t2", OwnerID: attendeeID, Title: "Someone else's", Date: "2025-04-01", Type: model.TaskPersonal},
		},
		Employees: []model.EmployeeMarkers{
			{ID: hostID, Name: "Hana", DOBDay: calendartest.Int(1), DOBMonth: calendartest.Int(4),
				JoiningDay: calendartest.Int(1), JoiningMonth: calendartest.Int(4)},
		},
	}
}

func kinds(entries []calendar.Entry) []calendar.Kind {
	out := make([]calendar.Kind, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Kind())
	}
	return out
}

func TestFeedCategoryOrder(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())

	feed, w, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Viewer: hostID})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", w.Start)

	day := feed["2025-04-01"]
	assert.Equal(t, []calendar.Kind{
		calendar.KindHoliday,
		calendar.KindEvent, calendar.KindEvent,
		calendar.KindMeeting,
		calendar.KindTask,
		calendar.KindBirthday,
		calendar.KindAnniversary,
	}, kinds(day))

	assert.Equal(t, "Offsite", day[1].Header().Title)
	assert.Equal(t, "Board prep", day[2].Header().Title)
	assert.Equal(t, "File report", day[4].Header().Title)

	assert.Len(t, feed["2025-03-30"], 1)
	assert.Len(t, feed["2025-04-02"], 1)
	assert.NotContains(t, feed, "2026-01-01")
}

func TestFeedPrivateEventVisibility(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())

	has := func(viewer string) bool {
		feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "4", Viewer: viewer})
		require.NoError(t, err)
		for _, e := range feed["2025-04-01"] {
			if e.Header().ID == "e2" {
				return true
			}
		}
		return false
	}

	assert.True(t, has(hostID))
	assert.True(t, has(attendeeID))
	assert.True(t, has(otherID), "creator sees own private event")
	assert.False(t, has("9f1c1a4e-0000-4000-8000-000000000000"))
}

func TestFeedMeetingRedactionPerViewer(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())

	feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "5", Viewer: otherID})
	require.NoError(t, err)
	require.Len(t, feed["2025-05-05"], 1)
	m := feed["2025-05-05"][0].(calendar.MeetingEntry)
	assert.True(t, m.IsLocked)
	assert.Equal(t, calendar.PrivateMeetingTitle, m.Title)

	feed, _, err = agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "5", Viewer: attendeeID})
	require.NoError(t, err)
	m = feed["2025-05-05"][0].(calendar.MeetingEntry)
	assert.False(t, m.IsLocked)
	assert.Equal(t, "Quarterly review", m.Title)
}

func TestFeedGuestGetsHolidaysOnly(t *testing.T) {
	for _, viewer := range []string{"", "guest"} {
		store := fixture()
		agg := calendar.NewAggregator(calendar.SourcesFrom(store), quietLog())

		feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Viewer: viewer})
		require.NoError(t, err)
		for date, entries := range feed {
			for _, e := range entries {
				assert.Equal(t, calendar.KindHoliday, e.Kind(), date)
			}
		}
		assert.Len(t, feed["2025-04-01"], 1)
		assert.Equal(t, int32(0), store.EventCall.Load())
		assert.Equal(t, int32(1), store.Calls.Load())
	}
}

func TestFeedTasksScopedToViewer(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())

	feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "4", Viewer: attendeeID})
	require.NoError(t, err)
	var titles []string
	for _, e := range feed["2025-04-01"] {
		if e.Kind() == calendar.KindTask {
			titles = append(titles, e.Header().Title)
		}
	}
	assert.Equal(t, []string{"Someone else's"}, titles)
}

func TestFeedUnknownViewerHasNoTasks(t *testing.T) {
	store := fixture()
	store.Users = map[string]bool{hostID: true}
	agg := calendar.NewAggregator(calendar.SourcesFrom(store), quietLog())

	feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "4", Viewer: otherID})
	require.NoError(t, err)
	for _, e := range feed["2025-04-01"] {
		assert.NotEqual(t, calendar.KindTask, e.Kind())
	}
}

func TestFeedSourceFailureAbortsAggregation(t *testing.T) {
	for _, source := range []string{"holidays", "events", "meetings", "tasks", "employees"} {
		t.Run(source, func(t *testing.T) {
			store := fixture()
			store.Err = map[string]error{source: errors.New("connection reset")}
			agg := calendar.NewAggregator(calendar.SourcesFrom(store), quietLog())

			feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "4", Viewer: hostID})
			require.Error(t, err)
			assert.Nil(t, feed)
			assert.ErrorIs(t, err, calendar.ErrAggregationFailed)

			var aerr *calendar.AggregationError
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, source, aerr.Source)
			assert.Equal(t, "2025-04-01", aerr.Start)
			assert.Equal(t, "2025-04-30", aerr.End)
		})
	}
}

func TestFeedInvalidRequestSkipsSources(t *testing.T) {
	store := fixture()
	agg := calendar.NewAggregator(calendar.SourcesFrom(store), quietLog())

	_, _, err := agg.Feed(context.Background(), calendar.Request{Year: "", Viewer: hostID})
	assert.ErrorIs(t, err, calendar.ErrInvalidRequest)
	assert.Equal(t, int32(0), store.Calls.Load())
}

func TestFeedIsDeterministic(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())
	req := calendar.Request{Year: "2025", Viewer: hostID}

	first, _, err := agg.Feed(context.Background(), req)
	require.NoError(t, err)
	a, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, _, err := agg.Feed(context.Background(), req)
		require.NoError(t, err)
		b, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestFeedJSONShape(t *testing.T) {
	agg := calendar.NewAggregator(calendar.SourcesFrom(fixture()), quietLog())

	feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: "2025", Month: "5", Viewer: otherID})
	require.NoError(t, err)
	raw, err := json.Marshal(feed)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	m := decoded["2025-05-05"][0]
	assert.Equal(t, "Meeting", m["type"])
	assert.Equal(t, "Private Meeting", m["title"])
	assert.Contains(t, m, "link")
	assert.Nil(t, m["link"])
	assert.Equal(t, true, m["isLocked"])
	assert.Contains(t, m, "color")
}

func TestFeedLeapDayMarkersEveryYear(t *testing.T) {
	store := &calendartest.Store{Employees: []model.EmployeeMarkers{
		{ID: "u1", Name: "Leap", DOBDay: calendartest.Int(29), DOBMonth: calendartest.Int(2)},
		{ID: "u2", Name: "June", DOBDay: calendartest.Int(15), DOBMonth: calendartest.Int(6)},
	}}
	agg := calendar.NewAggregator(calendar.SourcesFrom(store), quietLog())

	for year, want := range map[string][]string{
		"2025": {"2025-02-28", "2025-06-15"},
		"2028": {"2028-02-29", "2028-06-15"},
	} {
		feed, _, err := agg.Feed(context.Background(), calendar.Request{Year: year, Viewer: "x"})
		require.NoError(t, err)
		assert.Equal(t, want, feed.Dates(), year)
	}
}
