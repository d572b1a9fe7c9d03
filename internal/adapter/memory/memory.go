// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	records  []domain.WaterRecord
	sessions map[string]*domain.Session

	userIDCounter   int64
	recordIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.RecordRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByResetToken retrieves the user holding the given reset token.
func (db *DB) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Reset != nil && u.Reset.Token == token {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username || u.Email == email {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return copyUser(u), nil
}

// SetPendingReset replaces the user's pending reset grant.
func (db *DB) SetPendingReset(ctx context.Context, userID int64, reset domain.PendingReset) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == userID {
			r := reset
			u.Reset = &r
			return nil
		}
	}
	return domain.ErrNotFound
}

// CompletePasswordReset stores the new hash and clears the grant in one
// step, guarded by token and expiry.
func (db *DB) CompletePasswordReset(ctx context.Context, token, passwordHash string, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Reset != nil && u.Reset.Token == token && now.Before(u.Reset.ExpiresAt) {
			u.PasswordHash = passwordHash
			u.Reset = nil
			return nil
		}
	}
	return domain.ErrNotFound
}

func copyUser(u *domain.User) *domain.User {
	out := *u
	if u.Reset != nil {
		r := *u.Reset
		out.Reset = &r
	}
	return &out
}

// --- RecordRepository ---

// AddRecord adds a water-quality record.
func (db *DB) AddRecord(ctx context.Context, rec *domain.WaterRecord) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.recordIDCounter++
	stored := *rec
	stored.ID = db.recordIDCounter
	stored.CreatedAt = time.Now().UTC()
	db.records = append(db.records, stored)
	return stored.ID, nil
}

// GetRecord retrieves a record by ID.
func (db *DB) GetRecord(ctx context.Context, id int64) (*domain.WaterRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.records {
		if db.records[i].ID == id {
			rec := db.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateRecord rewrites the record with rec.ID.
func (db *DB) UpdateRecord(ctx context.Context, rec *domain.WaterRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.records {
		if db.records[i].ID == rec.ID {
			updated := *rec
			updated.CreatedAt = db.records[i].CreatedAt
			db.records[i] = updated
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListRecentRecords lists the most recent records.
func (db *DB) ListRecentRecords(ctx context.Context, limit int) ([]domain.WaterRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WaterRecord, len(db.records))
	copy(result, db.records)

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteRecordsByPlace removes every record for the given place name.
func (db *DB) DeleteRecordsByPlace(ctx context.Context, namePlace string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.records[:0]
	for _, rec := range db.records {
		if rec.NamePlace != namePlace {
			kept = append(kept, rec)
		}
	}
	db.records = kept
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		out := *s
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
