// Package activity appends to the activity_logs table the UI's usage panel
// reads. Writes are best-effort: the router logs a failure and moves on.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record appends one activity row for a dispatched action.
func (s *Store) Record(ctx context.Context, userID, action string) error {
	const q = `INSERT INTO activity_logs (user_id, action, count, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, q, userID, action, 1, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// RecentForUser returns the user's latest activity rows, newest first.
func (s *Store) RecentForUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	const q = `SELECT id, user_id, action, count, created_at FROM activity_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := s.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity logs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Count, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
