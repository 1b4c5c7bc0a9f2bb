package core

import (
	"context"
	"time"
)

// SessionStore remembers sessions that were ended before they expired.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
