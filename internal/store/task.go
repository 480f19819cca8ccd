package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"org-calendar-api/internal/model"
)

// FindTasks returns the viewer's own task list with deadlines in
// [start, end]. It returns ErrNotFound when the viewer does not exist.
// The existence check and the task query read the same snapshot.
func (s *Store) FindTasks(ctx context.Context, viewerID, start, end string) ([]model.Task, error) {
	viewerID = model.CanonicalID(viewerID)
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ok bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, viewerID,
	).Scan(&ok); err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	rows, err := tx.Query(ctx,
		`SELECT id, owner_id, group_id, title, description, date, time, is_completed,
		        type, color, COALESCE(host_id, ''), assigned_to, created_at
		 FROM tasks
		 WHERE owner_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date, created_at, id`, viewerID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		t        model.Task
		host     string
		assigned []string
	}
	var found []row
	var ids []string
	for rows.Next() {
		var r row
		if err := rows.Scan(
			&r.t.ID, &r.t.OwnerID, &r.t.GroupID, &r.t.Title, &r.t.Description, &r.t.Date,
			&r.t.Time, &r.t.IsCompleted, &r.t.Type, &r.t.Color, &r.host, &r.assigned, &r.t.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, r)
		ids = append(ids, r.host)
		ids = append(ids, r.assigned...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(found))
	for _, r := range found {
		if r.host != "" {
			h := refOf(refs, r.host)
			r.t.Host = &h
		}
		r.t.AssignedTo = refsOf(refs, r.assigned)
		out = append(out, r.t)
	}
	return out, nil
}

// AddTask stores a task in the host's list. Official tasks are also copied
// into every assignee's list, all in one transaction. It returns every row
// written, host copy first.
func (s *Store) AddTask(ctx context.Context, t *model.Task) ([]model.Task, error) {
	hostID := model.CanonicalID(t.OwnerID)
	t.OwnerID = hostID
	t.Host = &model.Ref{ID: hostID}
	t.GroupID = uuid.New().String()
	if t.Type == "" {
		t.Type = model.TaskPersonal
	}
	if t.Color == "" {
		t.Color = model.DefaultTaskColor
	}
	assigned := []string{}
	if t.Type == model.TaskOfficial {
		assigned = idsOf(t.AssignedTo)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var hostName string
	if err := tx.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, hostID).Scan(&hostName); err != nil {
		return nil, noRows(err)
	}
	t.Host.Name = hostName

	copies := []model.Task{*t}
	for _, uid := range assigned {
		if uid == hostID {
			continue
		}
		c := *t
		c.OwnerID = uid
		c.Description = fmt.Sprintf("[Assigned by %s] %s", hostName, t.Description)
		copies = append(copies, c)
	}

	for i := range copies {
		copies[i].ID = uuid.New().String()
		if err := insertTask(ctx, tx, &copies[i], assigned); err != nil {
			return nil, err
		}
	}
	*t = copies[0]

	return copies, tx.Commit(ctx)
}

func insertTask(ctx context.Context, tx pgx.Tx, t *model.Task, assigned []string) error {
	return tx.QueryRow(ctx,
		`INSERT INTO tasks (id, owner_id, group_id, title, description, date, time,
		                    is_completed, type, color, host_id, assigned_to)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,FALSE,$8,$9,$10,$11)
		 RETURNING created_at`,
		t.ID, t.OwnerID, t.GroupID, t.Title, t.Description, t.Date, t.Time,
		t.Type, t.Color, t.Host.ID, assigned,
	).Scan(&t.CreatedAt)
}

// ToggleTask flips completion of a task in the owner's list.
func (s *Store) ToggleTask(ctx context.Context, ownerID, taskID string) (bool, error) {
	var done bool
	err := s.pool.QueryRow(ctx,
		`UPDATE tasks SET is_completed = NOT is_completed
		 WHERE id = $1 AND owner_id = $2
		 RETURNING is_completed`, taskID, model.CanonicalID(ownerID),
	).Scan(&done)
	return done, noRows(err)
}

// DeleteTask removes a task from the owner's list. When the owner is the
// host, the assignee copies go with it.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	ownerID = model.CanonicalID(ownerID)
	return notFoundIfNone(s.pool.Exec(ctx,
		`DELETE FROM tasks
		 WHERE id = $1 AND owner_id = $2
		    OR group_id IN (SELECT group_id FROM tasks WHERE id = $1 AND owner_id = $2 AND host_id = $2)`,
		taskID, ownerID,
	))
}
