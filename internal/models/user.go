package models

import "time"

// UserProfile mirrors the managed identity store's profile row. Only the
// suspension flag matters to the router; everything else is display data.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsSuspended bool      `json:"is_suspended"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityLog is one row of the activity_logs table, consumed by the UI's
// usage display only.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
