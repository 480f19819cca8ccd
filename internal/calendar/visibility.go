package calendar

import (
	"strings"

	"org-calendar-api/internal/model"
)

const guestViewer = "guest"

// IsGuest reports whether the viewer is anonymous.
func IsGuest(viewer string) bool {
	v := strings.TrimSpace(viewer)
	return v == "" || v == guestViewer
}

// CanViewMeeting reports whether the viewer hosts or attends the meeting.
// The host is always authorized, whether or not they are also listed as an
// attendee.
func CanViewMeeting(m model.Meeting, viewer string) bool {
	if IsGuest(viewer) {
		return false
	}
	if m.Host.Is(viewer) {
		return true
	}
	for _, a := range m.Attendees {
		if a.Is(viewer) {
			return true
		}
	}
	return false
}

// CanViewEvent mirrors the event gateway's filter. It is used to check
// gateway results, not to redact them.
func CanViewEvent(ev model.CalendarEvent, viewer string) bool {
	if ev.Scope != model.ScopePrivate {
		return true
	}
	if IsGuest(viewer) {
		return false
	}
	if ev.CreatedBy != nil && ev.CreatedBy.Is(viewer) {
		return true
	}
	for _, a := range ev.Attendees {
		if a.Is(viewer) {
			return true
		}
	}
	return false
}

// RedactMeeting renders a meeting for the viewer. Viewers who are neither
// host nor attendee still see when the meeting is and who is in it, but
// not its title or link.
func RedactMeeting(m model.Meeting, viewer string) DayEntry {
	color := m.Color
	if color == "" {
		color = model.DefaultMeetingColor
	}
	e := MeetingEntry{
		ID:        m.ID,
		Type:      TypeMeeting,
		Title:     m.Title,
		Date:      m.Date,
		Host:      m.Host,
		Attendees: refs(m.Attendees),
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Color:     color,
	}
	if CanViewMeeting(m, viewer) {
		link := m.Link
		e.Link = &link
	} else {
		e.Title = PrivateMeetingTitle
		e.IsLocked = true
	}
	return DayEntry{Date: m.Date, Entry: e}
}
