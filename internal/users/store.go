// Package users reads the managed identity store's profile rows. Only the
// suspension flag participates in request handling.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leadflow/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Profile fetches one user profile by id.
func (s *Store) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	const q = `SELECT id, email, role, is_suspended, created_at FROM profiles WHERE id = $1`

	var p models.UserProfile
	err := s.db.QueryRowContext(ctx, q, userID).Scan(&p.ID, &p.Email, &p.Role, &p.IsSuspended, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// IsSuspended reports whether the user exists and is suspended. An unknown
// user is not suspended; identity is the provider's problem, not ours.
func (s *Store) IsSuspended(ctx context.Context, userID string) (bool, error) {
	p, err := s.Profile(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsSuspended, nil
}
