package store

import (
	"context"

	"github.com/google/uuid"

	"org-calendar-api/internal/model"
)

func (s *Store) FindHolidays(ctx context.Context, start, end string) ([]model.Holiday, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, date, type, color, description
		 FROM holidays
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date, name, id`, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Holiday
	for rows.Next() {
		var h model.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Type, &h.Color, &h.Description); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) ListHolidays(ctx context.Context) ([]model.Holiday, error) {
	return s.FindHolidays(ctx, "0000-01-01", "9999-12-31")
}

func (s *Store) CreateHoliday(ctx context.Context, h *model.Holiday) error {
	prepareHoliday(h)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO holidays (id, name, date, type, color, description) VALUES ($1,$2,$3,$4,$5,$6)`,
		h.ID, h.Name, h.Date, h.Type, h.Color, h.Description,
	)
	return err
}

// UpsertHoliday inserts a holiday or updates the existing one with the same
// date and name.
func (s *Store) UpsertHoliday(ctx context.Context, h *model.Holiday) error {
	prepareHoliday(h)
	return s.pool.QueryRow(ctx,
		`INSERT INTO holidays (id, name, date, type, color, description) VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (date, name) DO UPDATE
		 SET type = EXCLUDED.type, color = EXCLUDED.color, description = EXCLUDED.description
		 RETURNING id`,
		h.ID, h.Name, h.Date, h.Type, h.Color, h.Description,
	).Scan(&h.ID)
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	return notFoundIfNone(s.pool.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id))
}

func prepareHoliday(h *model.Holiday) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Type == "" {
		h.Type = model.HolidayFull
	}
	if h.Color == "" {
		h.Color = model.HolidayColor(h.Type)
	}
}
