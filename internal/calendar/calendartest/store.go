// Package calendartest provides an in-memory calendar source for tests.
package calendartest

import (
	"context"
	"sync/atomic"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/model"
)

// Store serves fixed records and honors the same filters as the database
// gateways. Setting Err makes the named source fail.
type Store struct {
	Holidays  []model.Holiday
	Events    []model.CalendarEvent
	Meetings  []model.Meeting
	Tasks     []model.Task
	Employees []model.EmployeeMarkers
	// Users lists known viewers; when nil every viewer is known.
	Users map[string]bool

	Err       map[string]error
	Calls     atomic.Int32
	EventCall atomic.Int32
}

var _ calendar.Store = (*Store)(nil)

func (s *Store) fail(source string) error {
	s.Calls.Add(1)
	if s.Err == nil {
		return nil
	}
	return s.Err[source]
}

func (s *Store) FindHolidays(_ context.Context, start, end string) ([]model.Holiday, error) {
	if err := s.fail("holidays"); err != nil {
		return nil, err
	}
	var out []model.Holiday
	for _, h := range s.Holidays {
		if h.Date >= start && h.Date <= end {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *Store) FindEvents(_ context.Context, start, end, viewerID string) ([]model.CalendarEvent, error) {
	s.EventCall.Add(1)
	if err := s.fail("events"); err != nil {
		return nil, err
	}
	var out []model.CalendarEvent
	for _, ev := range s.Events {
		evEnd := ev.EndDate
		if evEnd == "" {
			evEnd = ev.StartDate
		}
		if ev.StartDate > end || evEnd < start {
			continue
		}
		if !calendar.CanViewEvent(ev, viewerID) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *Store) FindMeetings(_ context.Context, start, end string) ([]model.Meeting, error) {
	if err := s.fail("meetings"); err != nil {
		return nil, err
	}
	var out []model.Meeting
	for _, m := range s.Meetings {
		if m.Date >= start && m.Date <= end {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) FindTasks(_ context.Context, viewerID, start, end string) ([]model.Task, error) {
	if err := s.fail("tasks"); err != nil {
		return nil, err
	}
	if s.Users != nil && !s.Users[viewerID] {
		return nil, calendar.ErrNotFound
	}
	var out []model.Task
	for _, t := range s.Tasks {
		if model.CanonicalID(t.OwnerID) != viewerID {
			continue
		}
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) FindEmployeeMarkers(_ context.Context) ([]model.EmployeeMarkers, error) {
	if err := s.fail("employees"); err != nil {
		return nil, err
	}
	return s.Employees, nil
}

// Int returns a pointer to v, for building EmployeeMarkers literals.
func Int(v int) *int { return &v }
