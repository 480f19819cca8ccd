package calendar

import (
	"context"

	"org-calendar-api/internal/model"
)

// HolidaySource returns holidays dated within [start, end].
type HolidaySource interface {
	FindHolidays(ctx context.Context, start, end string) ([]model.Holiday, error)
}

// EventSource returns events whose span overlaps [start, end] and that the
// viewer may see: Global or legacy-unscoped events, and Private events the
// viewer created or attends.
type EventSource interface {
	FindEvents(ctx context.Context, start, end, viewerID string) ([]model.CalendarEvent, error)
}

// MeetingSource returns every meeting dated within [start, end]. Visibility
// is applied by the caller.
type MeetingSource interface {
	FindMeetings(ctx context.Context, start, end string) ([]model.Meeting, error)
}

// TaskSource returns the viewer's own task list, filtered by deadline.
// It returns ErrNotFound when the viewer does not exist.
type TaskSource interface {
	FindTasks(ctx context.Context, viewerID, start, end string) ([]model.Task, error)
}

type EmployeeSource interface {
	FindEmployeeMarkers(ctx context.Context) ([]model.EmployeeMarkers, error)
}

type Sources struct {
	Holidays  HolidaySource
	Events    EventSource
	Meetings  MeetingSource
	Tasks     TaskSource
	Employees EmployeeSource
}

// Store is satisfied by anything that serves all five sources.
type Store interface {
	HolidaySource
	EventSource
	MeetingSource
	TaskSource
	EmployeeSource
}

// SourcesFrom uses a single store for every source.
func SourcesFrom(s Store) Sources {
	return Sources{Holidays: s, Events: s, Meetings: s, Tasks: s, Employees: s}
}
