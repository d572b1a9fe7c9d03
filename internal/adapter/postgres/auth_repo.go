// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"

	"github.com/lib/pq"
)

const userColumns = "id, username, email, password_hash, reset_token, reset_expires, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u            domain.User
		resetToken   sql.NullString
		resetExpires sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &resetToken, &resetExpires, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if resetToken.Valid {
		u.Reset = &domain.PendingReset{Token: resetToken.String, ExpiresAt: resetExpires.Time}
	}
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// GetByEmail retrieves a user by email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetByResetToken retrieves the user holding the given reset token.
func (d *DB) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token = $1", token))
}

// Create creates a new user. Unique violations on username or email are
// reported as domain.ErrConflict.
func (d *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	user, err := scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		username, email, passwordHash, time.Now()))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetPendingReset replaces the user's pending reset grant.
func (d *DB) SetPendingReset(ctx context.Context, userID int64, reset domain.PendingReset) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE users SET reset_token = $1, reset_expires = $2 WHERE id = $3",
		reset.Token, reset.ExpiresAt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CompletePasswordReset writes the new hash and clears the reset pair in
// a single statement. The WHERE clause re-checks token and expiry, so an
// expired or already-consumed grant updates nothing.
func (d *DB) CompletePasswordReset(ctx context.Context, token, passwordHash string, now time.Time) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE users SET password_hash = $1, reset_token = NULL, reset_expires = NULL WHERE reset_token = $2 AND reset_expires > $3",
		passwordHash, token, now)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		userID, token, expiresAt, time.Now())
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
