package calendar

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"org-calendar-api/internal/model"
)

// Request asks for the feed of one viewer over a year or a month.
type Request struct {
	Year   string
	Month  string
	Viewer string
}

// Aggregator builds the per-day calendar feed from the five sources.
type Aggregator struct {
	src Sources
	log *logrus.Entry
}

func NewAggregator(src Sources, log *logrus.Entry) *Aggregator {
	return &Aggregator{src: src, log: log.WithField("component", "aggregator")}
}

// Feed resolves the request window, reads all sources concurrently and
// merges the results. Guests only get holidays. Any source failure fails the
// whole feed with an *AggregationError; partial feeds are never returned.
func (a *Aggregator) Feed(ctx context.Context, req Request) (Feed, Window, error) {
	w, err := ResolveWindow(req.Year, req.Month)
	if err != nil {
		return nil, Window{}, err
	}

	guest := IsGuest(req.Viewer)
	viewer := ""
	if !guest {
		viewer = model.CanonicalID(req.Viewer)
	}
	log := a.log.WithFields(logrus.Fields{"start": w.Start, "end": w.End, "viewer": viewer})

	var (
		holidays  []model.Holiday
		events    []model.CalendarEvent
		meetings  []model.Meeting
		tasks     []model.Task
		employees []model.EmployeeMarkers
	)

	fail := func(source string, err error) error {
		return &AggregationError{Start: w.Start, End: w.End, Viewer: viewer, Source: source, Err: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if holidays, err = a.src.Holidays.FindHolidays(gctx, w.Start, w.End); err != nil {
			return fail("holidays", err)
		}
		return nil
	})
	if !guest {
		g.Go(func() error {
			var err error
			if events, err = a.src.Events.FindEvents(gctx, w.Start, w.End, viewer); err != nil {
				return fail("events", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if meetings, err = a.src.Meetings.FindMeetings(gctx, w.Start, w.End); err != nil {
				return fail("meetings", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			tasks, err = a.src.Tasks.FindTasks(gctx, viewer, w.Start, w.End)
			if errors.Is(err, ErrNotFound) {
				// unknown viewers just have no tasks
				log.Debug("task list owner not found")
				tasks = nil
				return nil
			}
			if err != nil {
				return fail("tasks", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if employees, err = a.src.Employees.FindEmployeeMarkers(gctx); err != nil {
				return fail("employees", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("calendar aggregation failed")
		return nil, w, err
	}

	holidayEntries := make([]DayEntry, 0, len(holidays))
	for _, h := range holidays {
		holidayEntries = append(holidayEntries, holidayEntry(h))
	}

	var eventEntries []DayEntry
	for _, ev := range events {
		days, err := ExpandEvent(ev, w)
		if err != nil {
			log.WithError(err).Warn("skipping event with malformed dates")
			continue
		}
		eventEntries = append(eventEntries, days...)
	}

	meetingEntries := make([]DayEntry, 0, len(meetings))
	for _, m := range meetings {
		meetingEntries = append(meetingEntries, RedactMeeting(m, viewer))
	}

	taskEntries := make([]DayEntry, 0, len(tasks))
	for _, t := range tasks {
		taskEntries = append(taskEntries, taskEntry(t))
	}

	markers := ProjectMarkers(employees, w)

	feed := assemble(holidayEntries, eventEntries, meetingEntries, taskEntries, markers)
	log.WithFields(logrus.Fields{"days": len(feed), "entries": feed.Len()}).Debug("calendar feed assembled")
	return feed, w, nil
}
