package app

import (
	"context"
	"errors"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidResetToken covers every way a reset token can be unusable:
// never issued, expired, already consumed, or a store failure during the
// lookup. Collapsing them keeps the failure indistinguishable from outside.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const resetTokenTTL = time.Hour

// ResetService coordinates the password-reset token lifecycle.
type ResetService struct {
	users domain.UserRepository
}

// NewResetService creates a new password-reset coordinator.
func NewResetService(users domain.UserRepository) *ResetService {
	return &ResetService{users: users}
}

// Issue binds a fresh single-use token to the account with the given
// email and returns it for delivery. The token is valid for one hour.
// Whether the account exists is not revealed beyond the error type.
func (s *ResetService) Issue(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrInvalidResetToken
	}
	if err != nil {
		return "", err
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	reset := domain.PendingReset{
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.users.SetPendingReset(ctx, user.ID, reset); err != nil {
		return "", err
	}
	return token, nil
}

// UserForToken resolves a reset token to its user when, and only when,
// the grant exists and has not expired. Store failures are folded into
// ErrInvalidResetToken so they cannot be told apart from a bad token.
func (s *ResetService) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidResetToken
	}
	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidResetToken
	}
	if user.Reset == nil || !time.Now().Before(user.Reset.ExpiresAt) {
		return nil, ErrInvalidResetToken
	}
	return user, nil
}

// CompleteReset re-validates the token exactly as UserForToken does, then
// stores the new password hash and consumes the grant atomically. A second
// submission with the same token fails with ErrInvalidResetToken.
func (s *ResetService) CompleteReset(ctx context.Context, token, password, password2 string) error {
	if len(password) < 8 {
		return failValidation("Password should be at least 8 characters")
	}
	if password != password2 {
		return failValidation("Passwords do not match")
	}

	if _, err := s.UserForToken(ctx, token); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.CompletePasswordReset(ctx, token, string(hash), time.Now()); err != nil {
		return ErrInvalidResetToken
	}
	return nil
}
