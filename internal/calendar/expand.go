package calendar

import (
	"fmt"

	"org-calendar-api/internal/model"
)

// ExpandEvent returns one entry per calendar day the event covers inside
// the window. Days of the event's span that fall outside the window are not
// emitted. A missing or inverted end date is treated as a single-day event.
func ExpandEvent(ev model.CalendarEvent, w Window) ([]DayEntry, error) {
	start, err := ParseDate(ev.StartDate)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	endDate := ev.EndDate
	if endDate == "" || endDate < ev.StartDate {
		endDate = ev.StartDate
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.ID, err)
	}

	winStart, winEnd := w.Bounds()
	if end.Before(winStart) || start.After(winEnd) {
		return nil, nil
	}
	if start.Before(winStart) {
		start = winStart
	}
	if end.After(winEnd) {
		end = winEnd
	}

	entry := eventEntry(ev, endDate)
	out := make([]DayEntry, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, DayEntry{Date: FormatDate(d), Entry: entry})
	}
	return out, nil
}

func eventEntry(ev model.CalendarEvent, endDate string) EventEntry {
	typ := ev.Type
	if typ == "" {
		typ = "Event"
	}
	color := ev.Color
	if color == "" {
		color = model.DefaultEventColor
	}
	return EventEntry{
		ID:          ev.ID,
		Type:        typ,
		Title:       ev.Title,
		Color:       color,
		Description: ev.Description,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		StartAllDay: ev.StartAllDay,
		EndAllDay:   ev.EndAllDay,
		StartDate:   ev.StartDate,
		EndDate:     endDate,
		IsMultiDay:  ev.StartDate != endDate,
		Host:        ev.CreatedBy,
		Attendees:   refs(ev.Attendees),
		Scope:       ev.Scope,
	}
}
