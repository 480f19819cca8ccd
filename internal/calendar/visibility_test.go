package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/model"
)

const (
	hostID     = "7d0f5b5e-6a0b-4b8e-9a51-0d7c2c1f0a01"
	attendeeID = "7d0f5b5e-6a0b-4b8e-9a51-0d7c2c1f0a02"
	otherID    = "7d0f5b5e-6a0b-4b8e-9a51-0d7c2c1f0a03"
)

func standup() model.Meeting {
	return model.Meeting{
		ID:        "m1",
		Title:     "Quarterly review",
		Link:      "https://meet.example.com/q",
		Date:      "2025-05-05",
		StartTime: "10:00 AM",
		EndTime:   "11:00 AM",
		Host:      model.Ref{ID: hostID, Name: "Hana"},
		Attendees: []model.Ref{{ID: attendeeID, Name: "Arun"}},
	}
}

func TestRedactMeetingAuthorized(t *testing.T) {
	for _, viewer := range []string{hostID, attendeeID} {
		e := calendar.RedactMeeting(standup(), viewer).Entry.(calendar.MeetingEntry)
		assert.Equal(t, "Quarterly review", e.Title)
		require.NotNil(t, e.Link)
		assert.Equal(t, "https://meet.example.com/q", *e.Link)
		assert.False(t, e.IsLocked)
	}
}

func TestRedactMeetingUnauthorized(t *testing.T) {
	d := calendar.RedactMeeting(standup(), otherID)
	e := d.Entry.(calendar.MeetingEntry)

	assert.Equal(t, "2025-05-05", d.Date)
	assert.Equal(t, calendar.PrivateMeetingTitle, e.Title)
	assert.Nil(t, e.Link)
	assert.True(t, e.IsLocked)
	// who is busy stays visible
	assert.Equal(t, hostID, e.Host.ID)
	assert.Len(t, e.Attendees, 1)
	assert.Equal(t, "10:00 AM", e.StartTime)
	assert.Equal(t, model.DefaultMeetingColor, e.Color)
}

func TestCanViewMeetingNormalizesIDs(t *testing.T) {
	m := standup()
	m.Host.ID = "  7D0F5B5E-6A0B-4B8E-9A51-0D7C2C1F0A01 "
	assert.True(t, calendar.CanViewMeeting(m, hostID))

	m = standup()
	m.Attendees = []model.Ref{{ID: "{7d0f5b5e-6a0b-4b8e-9a51-0d7c2c1f0a02}"}}
	assert.True(t, calendar.CanViewMeeting(m, attendeeID))
}

func TestCanViewMeetingHostNotInAttendees(t *testing.T) {
	m := standup()
	m.Attendees = nil
	assert.True(t, calendar.CanViewMeeting(m, hostID))
	assert.False(t, calendar.CanViewMeeting(m, attendeeID))
	assert.False(t, calendar.CanViewMeeting(m, "guest"))
	assert.False(t, calendar.CanViewMeeting(m, ""))
}

func TestCanViewEvent(t *testing.T) {
	private := model.CalendarEvent{
		Scope:     model.ScopePrivate,
		CreatedBy: &model.Ref{ID: hostID},
		Attendees: []model.Ref{{ID: attendeeID}},
	}
	assert.True(t, calendar.CanViewEvent(private, hostID))
	assert.True(t, calendar.CanViewEvent(private, attendeeID))
	assert.False(t, calendar.CanViewEvent(private, otherID))
	assert.False(t, calendar.CanViewEvent(private, "guest"))

	assert.True(t, calendar.CanViewEvent(model.CalendarEvent{Scope: model.ScopeGlobal}, otherID))
	assert.True(t, calendar.CanViewEvent(model.CalendarEvent{}, otherID))
}

func TestIsGuest(t *testing.T) {
	assert.True(t, calendar.IsGuest(""))
	assert.True(t, calendar.IsGuest("guest"))
	assert.True(t, calendar.IsGuest(" guest "))
	assert.False(t, calendar.IsGuest(hostID))
}
