package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionDuration is the default lifetime of an authenticated session.
const SessionDuration = 12 * time.Hour

// Session is the authenticated identity carried by the session cookie.
type Session struct {
	UserID    uuid.UUID
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// SessionRevoker remembers sessions ended before their expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
