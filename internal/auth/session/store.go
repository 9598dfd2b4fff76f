package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session token is unknown or expired.
var ErrNotFound = errors.New("session not found or expired")

// Session is the server-side record behind an opaque login token. The
// token itself carries no claims, everything lives in the store.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store defines the interface for session storage
type Store interface {
	// Create mints a new session for the user and returns it with a
	// fresh opaque token.
	Create(ctx context.Context, userID uint, username, role string) (*Session, error)

	// Get resolves a token to its session, returning ErrNotFound for
	// unknown or expired tokens.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete revokes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
