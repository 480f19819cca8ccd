package store

import (
	"context"

	"github.com/google/uuid"

	"org-calendar-api/internal/model"
)

// FindMeetings returns all meetings in [start, end] regardless of viewer.
func (s *Store) FindMeetings(ctx context.Context, start, end string) ([]model.Meeting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, link, date, start_time, end_time, host_id, attendees, color, created_at
		 FROM meetings
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date, start_time, created_at, id`, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		m         model.Meeting
		host      string
		attendees []string
	}
	var found []row
	var ids []string
	for rows.Next() {
		var r row
		if err := rows.Scan(
			&r.m.ID, &r.m.Title, &r.m.Link, &r.m.Date, &r.m.StartTime, &r.m.EndTime,
			&r.host, &r.attendees, &r.m.Color, &r.m.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, r)
		ids = append(ids, r.host)
		ids = append(ids, r.attendees...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Meeting, 0, len(found))
	for _, r := range found {
		r.m.Host = refOf(refs, r.host)
		r.m.Attendees = refsOf(refs, r.attendees)
		out = append(out, r.m)
	}
	return out, nil
}

func (s *Store) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Color == "" {
		m.Color = model.DefaultMeetingColor
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO meetings (id, title, link, date, start_time, end_time, host_id, attendees, color)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING created_at`,
		m.ID, m.Title, m.Link, m.Date, m.StartTime, m.EndTime,
		model.CanonicalID(m.Host.ID), idsOf(m.Attendees), m.Color,
	).Scan(&m.CreatedAt)
}

func (s *Store) DeleteMeeting(ctx context.Context, id string) error {
	return notFoundIfNone(s.pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id))
}
