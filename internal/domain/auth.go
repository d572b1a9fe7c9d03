// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repository lookups that match no record.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by creates that violate a uniqueness constraint.
var ErrConflict = errors.New("already exists")

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Reset        *PendingReset
	CreatedAt    time.Time
}

// PendingReset is an outstanding password-reset grant. The token and its
// expiry exist only as a pair: issuing a reset sets both, consuming or
// superseding it clears both.
type PendingReset struct {
	Token     string
	ExpiresAt time.Time
}

// Session represents an active user session.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	// Create persists a new user with no pending reset. It returns
	// ErrConflict when the username or email is already taken, which is
	// the authoritative duplicate check under concurrent registration.
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	// SetPendingReset replaces the user's pending reset grant.
	SetPendingReset(ctx context.Context, userID int64, reset PendingReset) error
	// CompletePasswordReset stores the new password hash and clears the
	// pending reset in one atomic operation, guarded by the token and
	// its expiry against now. It returns ErrNotFound when no user holds
	// an unexpired grant for token, so a grant can be consumed at most
	// once.
	CompletePasswordReset(ctx context.Context, token, passwordHash string, now time.Time) error
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
