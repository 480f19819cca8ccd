// Package reminder broadcasts the day's birthdays and work anniversaries.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/notify"
)

type Enqueuer interface {
	Enqueue(m notify.Message) bool
}

// Job is a cron job; each run looks at the current date in its location.
type Job struct {
	src calendar.EmployeeSource
	q   Enqueuer
	loc *time.Location
	log *logrus.Entry
	now func() time.Time
}

func New(src calendar.EmployeeSource, q Enqueuer, loc *time.Location, log *logrus.Entry) *Job {
	return &Job{
		src: src,
		q:   q,
		loc: loc,
		log: log.WithField("component", "reminder"),
		now: time.Now,
	}
}

// Run implements cron.Job.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := j.RunAt(ctx, j.now()); err != nil {
		j.log.WithError(err).Error("reminder run failed")
	}
}

// RunAt enqueues one broadcast per marker falling on t's date and returns
// how many were queued.
func (j *Job) RunAt(ctx context.Context, t time.Time) (int, error) {
	local := t.In(j.loc)
	day := calendar.DayWindow(time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC))

	employees, err := j.src.FindEmployeeMarkers(ctx)
	if err != nil {
		return 0, fmt.Errorf("load employee markers: %w", err)
	}

	queued := 0
	for _, m := range calendar.ProjectMarkers(employees, day) {
		marker := m.Entry.(calendar.MarkerEntry)
		if j.q.Enqueue(notify.Message{
			Title:     marker.Title,
			Message:   message(marker),
			Type:      marker.Type,
			RelatedID: marker.EmployeeID,
		}) {
			queued++
		}
	}
	j.log.WithFields(logrus.Fields{"date": day.Start, "queued": queued}).Info("reminders queued")
	return queued, nil
}

func message(m calendar.MarkerEntry) string {
	if m.Type == calendar.TypeAnniversary {
		return "Congratulate your colleague on their work anniversary today."
	}
	return "Wish your colleague a happy birthday today."
}

// Schedule registers the job on a new cron running in the job's location.
// The caller starts and stops the returned cron.
func Schedule(spec string, j *Job) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(j.loc))
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, fmt.Errorf("bad reminder schedule %q: %w", spec, err)
	}
	return c, nil
}
