package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/model"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = calendar.ErrNotFound
	// ErrConflict is returned when a unique column already holds the value.
	ErrConflict = calendar.ErrConflict
)

type Store struct {
	pool *pgxpool.Pool
}

var _ calendar.Store = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies the schema file at path. The schema is idempotent.
func (s *Store) Migrate(ctx context.Context, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// resolveRefs loads name and email for the given user ids in one query.
// Ids with no matching user are returned as bare references.
func (s *Store) resolveRefs(ctx context.Context, ids []string) (map[string]model.Ref, error) {
	seen := make(map[string]bool, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		uniq = append(uniq, id)
	}
	out := make(map[string]model.Ref, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, `SELECT id, name, email FROM users WHERE id = ANY($1)`, uniq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Ref
		if err := rows.Scan(&r.ID, &r.Name, &r.Email); err != nil {
			return nil, err
		}
		out[r.ID] = r
	}
	return out, rows.Err()
}

func refOf(refs map[string]model.Ref, id string) model.Ref {
	if r, ok := refs[id]; ok {
		return r
	}
	return model.Ref{ID: id}
}

func refsOf(refs map[string]model.Ref, ids []string) []model.Ref {
	out := make([]model.Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, refOf(refs, id))
	}
	return out
}

func idsOf(refs []model.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if id := model.CanonicalID(r.ID); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func notFoundIfNone(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
