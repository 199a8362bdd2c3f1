package usage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newMiniredisTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTracker(client), mr
}

func todayKey(userID, action string) string {
	return fmt.Sprintf("usage:%s:%s:%s", userID, action, time.Now().UTC().Format("2006-01-02"))
}

// ==========================
// Counter Tests
// ==========================

func TestIncrement(t *testing.T) {
	tracker, mr := newMiniredisTracker(t)
	ctx := context.Background()

	count, err := tracker.Increment(ctx, "user-1", "qualifyLead")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = tracker.Increment(ctx, "user-1", "qualifyLead")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The counter expires, so the daily window resets on its own.
	ttl := mr.TTL(todayKey("user-1", "qualifyLead"))
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 24*time.Hour)
}

func TestIncrement_SeparateCountersPerAction(t *testing.T) {
	tracker, _ := newMiniredisTracker(t)
	ctx := context.Background()

	_, err := tracker.Increment(ctx, "user-1", "qualifyLead")
	require.NoError(t, err)
	_, err = tracker.Increment(ctx, "user-1", "findLeads")
	require.NoError(t, err)

	count, err := tracker.Today(ctx, "user-1", "qualifyLead")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToday_UnsetIsZero(t *testing.T) {
	tracker, _ := newMiniredisTracker(t)

	count, err := tracker.Today(context.Background(), "user-1", "enrichLead")

	require.NoError(t, err)
	assert.Zero(t, count)
}

// ==========================
// Failure Tests
// ==========================

func TestIncrement_RedisDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectIncr(todayKey("user-1", "qualifyLead")).SetErr(assert.AnError)

	tracker := NewTracker(client)
	_, err := tracker.Increment(context.Background(), "user-1", "qualifyLead")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incr usage counter")
}

func TestToday_RedisDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(todayKey("user-1", "qualifyLead")).SetErr(assert.AnError)

	tracker := NewTracker(client)
	_, err := tracker.Today(context.Background(), "user-1", "qualifyLead")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "get usage counter")
}
