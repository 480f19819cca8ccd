package store

import (
	"context"

	"org-calendar-api/internal/model"
)

// InsertNotifications writes one notification row per recipient. A nil
// recipient list broadcasts to every user.
func (s *Store) InsertNotifications(ctx context.Context, recipients []string, n model.Notification) (int64, error) {
	var ids []string
	if recipients != nil {
		ids = make([]string, 0, len(recipients))
		for _, r := range recipients {
			if id := model.CanonicalID(r); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return 0, nil
		}
	}
	if n.Type == "" {
		n.Type = "General"
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO notifications (id, recipient_id, title, message, type, related_id)
		 SELECT gen_random_uuid()::text, u.id, $2, $3, $4, $5
		 FROM users u
		 WHERE $1::text[] IS NULL OR u.id = ANY($1)`,
		ids, n.Title, n.Message, n.Type, n.RelatedID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListNotifications returns the newest notifications of a user first.
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, recipient_id, title, message, type, related_id, is_read, created_at
		 FROM notifications
		 WHERE recipient_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2`, model.CanonicalID(userID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type,
			&n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID, id string) error {
	return notFoundIfNone(s.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, model.CanonicalID(userID),
	))
}

// MarkAllNotificationsRead marks every unread notification of userID as
// read and returns how many changed.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND NOT is_read`,
		model.CanonicalID(userID),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
