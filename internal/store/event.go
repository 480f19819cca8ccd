package store

import (
	"context"

	"github.com/google/uuid"

	"org-calendar-api/internal/model"
)

// FindEvents returns events overlapping [start, end] that viewerID may see.
// Rows without a scope predate scoping and are public.
func (s *Store) FindEvents(ctx context.Context, start, end, viewerID string) ([]model.CalendarEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, start_date, end_date, start_time, end_time,
		        start_all_day, end_all_day, type, color, COALESCE(created_by, ''),
		        COALESCE(scope, ''), attendees, created_at
		 FROM events
		 WHERE start_date <= $2 AND end_date >= $1
		   AND (scope IS NULL OR scope = '' OR scope = 'Global'
		        OR (scope = 'Private' AND ($3 = ANY(attendees) OR created_by = $3)))
		 ORDER BY start_date, created_at, id`, start, end, viewerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		ev        model.CalendarEvent
		creator   string
		attendees []string
	}
	var found []row
	var ids []string
	for rows.Next() {
		var r row
		if err := rows.Scan(
			&r.ev.ID, &r.ev.Title, &r.ev.Description, &r.ev.StartDate, &r.ev.EndDate,
			&r.ev.StartTime, &r.ev.EndTime, &r.ev.StartAllDay, &r.ev.EndAllDay,
			&r.ev.Type, &r.ev.Color, &r.creator, &r.ev.Scope, &r.attendees, &r.ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, r)
		ids = append(ids, r.creator)
		ids = append(ids, r.attendees...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.CalendarEvent, 0, len(found))
	for _, r := range found {
		if r.creator != "" {
			c := refOf(refs, r.creator)
			r.ev.CreatedBy = &c
		}
		r.ev.Attendees = refsOf(refs, r.attendees)
		out = append(out, r.ev)
	}
	return out, nil
}

func (s *Store) CreateEvent(ctx context.Context, ev *model.CalendarEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.EndDate == "" {
		ev.EndDate = ev.StartDate
	}
	if ev.Type == "" {
		ev.Type = "Event"
	}
	if ev.Color == "" {
		ev.Color = model.DefaultEventColor
	}
	var creator *string
	if ev.CreatedBy != nil {
		id := model.CanonicalID(ev.CreatedBy.ID)
		creator = &id
	}
	var scope *string
	if ev.Scope != "" {
		scope = &ev.Scope
	}
	attendees := []string{}
	if ev.Scope == model.ScopePrivate {
		attendees = idsOf(ev.Attendees)
	}

	return s.pool.QueryRow(ctx,
		`INSERT INTO events (id, title, description, start_date, end_date, start_time, end_time,
		                     start_all_day, end_all_day, type, color, created_by, scope, attendees)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 RETURNING created_at`,
		ev.ID, ev.Title, ev.Description, ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime,
		ev.StartAllDay, ev.EndAllDay, ev.Type, ev.Color, creator, scope, attendees,
	).Scan(&ev.CreatedAt)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return notFoundIfNone(s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id))
}
