package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound means the session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Binding ties a session id to the seat it controls.
type Binding struct {
	ID        string    `json:"id"`
	TableID   int64     `json:"table_id"`
	Seat      int       `json:"seat"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo stores seat bindings keyed by session id.
type Repo interface {
	Save(ctx context.Context, b Binding, ttl time.Duration) error
	Get(ctx context.Context, id string) (Binding, error)
	Delete(ctx context.Context, id string) error
}
