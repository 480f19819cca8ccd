package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"org-calendar-api/internal/model"
)

const employeeColumns = `id, email, name, role, current_status, dob, joining_date`

// CreateEmployee stores a user together with the day/month pairs derived
// from the date of birth and joining date.
func (s *Store) CreateEmployee(ctx context.Context, e *model.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.ID = model.CanonicalID(e.ID)
	if e.Role == "" {
		e.Role = model.RoleOfficial
	}
	if e.Status == "" {
		e.Status = model.StatusAvailable
	}
	m := e.Markers()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, current_status, dob, joining_date,
		                    dob_day, dob_month, joining_day, joining_month)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		e.ID, e.Email, e.Name, e.Role, e.Status, e.DOB, e.JoiningDate,
		m.DOBDay, m.DOBMonth, m.JoiningDay, m.JoiningMonth,
	)
	return conflict(err)
}

// UpdateEmployeeDetails sets the date of birth and joining date of e.ID,
// and its name when e.Name is not empty. The marker pairs are re-derived in
// the same statement. e is refreshed from the stored row.
func (s *Store) UpdateEmployeeDetails(ctx context.Context, e *model.Employee) error {
	m := e.Markers()
	err := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = COALESCE(NULLIF($2, ''), name),
		     dob = $3, joining_date = $4,
		     dob_day = $5, dob_month = $6, joining_day = $7, joining_month = $8,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+employeeColumns,
		model.CanonicalID(e.ID), e.Name, e.DOB, e.JoiningDate,
		m.DOBDay, m.DOBMonth, m.JoiningDay, m.JoiningMonth,
	).Scan(&e.ID, &e.Email, &e.Name, &e.Role, &e.Status, &e.DOB, &e.JoiningDate)
	return noRows(err)
}

func (s *Store) UpdateEmployeeStatus(ctx context.Context, id, status string) error {
	return notFoundIfNone(s.pool.Exec(ctx,
		`UPDATE users SET current_status = $2, updated_at = NOW() WHERE id = $1`,
		model.CanonicalID(id), status,
	))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchEmployees lists users whose name or email contains query, ignoring
// case. An empty query lists everyone. limit defaults to 50 and is capped
// at 200.
func (s *Store) SearchEmployees(ctx context.Context, query string, limit int) ([]model.Employee, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"

	rows, err := s.pool.Query(ctx,
		`SELECT `+employeeColumns+`
		 FROM users
		 WHERE name ILIKE $1 OR email ILIKE $1
		 ORDER BY name, id
		 LIMIT $2`, pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Email, &e.Name, &e.Role, &e.Status, &e.DOB, &e.JoiningDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FindEmployeeMarkers returns the annual marker pairs of every user.
func (s *Store) FindEmployeeMarkers(ctx context.Context) ([]model.EmployeeMarkers, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, dob_day, dob_month, joining_day, joining_month
		 FROM users
		 ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EmployeeMarkers
	for rows.Next() {
		var m model.EmployeeMarkers
		if err := rows.Scan(&m.ID, &m.Name, &m.DOBDay, &m.DOBMonth, &m.JoiningDay, &m.JoiningMonth); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
