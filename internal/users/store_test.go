package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileQuery = `SELECT id, email, role, is_suspended, created_at FROM profiles WHERE id = \$1`

func profileRows(suspended bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "is_suspended", "created_at"}).
		AddRow("user-1", "dana@example.com", "member", suspended, time.Now())
}

func TestProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(profileQuery).WithArgs("user-1").WillReturnRows(profileRows(false))

	store := NewStore(db)
	p, err := store.Profile(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "dana@example.com", p.Email)
	assert.False(t, p.IsSuspended)
}

func TestProfile_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(profileQuery).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_suspended", "created_at"}))

	store := NewStore(db)
	_, err = store.Profile(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsSuspended(t *testing.T) {
	tests := []struct {
		name      string
		suspended bool
	}{
		{name: "suspended user", suspended: true},
		{name: "active user", suspended: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(profileQuery).WithArgs("user-1").WillReturnRows(profileRows(tt.suspended))

			store := NewStore(db)
			suspended, err := store.IsSuspended(context.Background(), "user-1")

			require.NoError(t, err)
			assert.Equal(t, tt.suspended, suspended)
		})
	}
}

func TestIsSuspended_UnknownUserIsNotSuspended(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(profileQuery).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_suspended", "created_at"}))

	store := NewStore(db)
	suspended, err := store.IsSuspended(context.Background(), "ghost")

	require.NoError(t, err)
	assert.False(t, suspended)
}
