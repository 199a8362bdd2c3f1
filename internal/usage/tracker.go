// Package usage keeps per-user per-action daily counters in Redis for the
// UI's usage display. Counters expire at midnight UTC.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Tracker struct {
	client *redis.Client
}

func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

func key(userID, action string, day time.Time) string {
	return fmt.Sprintf("usage:%s:%s:%s", userID, action, day.UTC().Format("2006-01-02"))
}

// Increment bumps today's counter for the user/action pair. The TTL is set on
// every call so a counter created just before midnight still expires on time.
func (t *Tracker) Increment(ctx context.Context, userID, action string) (int64, error) {
	now := time.Now().UTC()
	k := key(userID, action, now)

	count, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("incr usage counter: %w", err)
	}

	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	if err := t.client.ExpireAt(ctx, k, midnight).Err(); err != nil {
		return count, fmt.Errorf("expire usage counter: %w", err)
	}
	return count, nil
}

// Today returns today's counter for the user/action pair; zero when unset.
func (t *Tracker) Today(ctx context.Context, userID, action string) (int64, error) {
	count, err := t.client.Get(ctx, key(userID, action, time.Now().UTC())).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get usage counter: %w", err)
	}
	return count, nil
}
