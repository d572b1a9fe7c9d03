// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/mail"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrIncorrectUsername indicates that no account exists for the username.
	ErrIncorrectUsername = errors.New("Incorrect username")
	// ErrIncorrectPassword indicates that the password did not match.
	ErrIncorrectPassword = errors.New("Incorrect password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError is a user-correctable input failure. Its message is
// rendered back alongside the submitted form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func failValidation(msg string) error {
	return &ValidationError{Message: msg}
}

const sessionTTL = 24 * time.Hour

// AuthService handles registration, credential checks and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

// Register validates the registration form and creates the account.
// Failures of the form itself come back as *ValidationError; the rules
// run in a fixed order and the first failure wins.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Password2 == "" {
		return nil, failValidation("Please fill in all fields!")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, failValidation("Invalid email format")
	}
	if len(in.Password) < 8 {
		return nil, failValidation("Password should be at least 8 characters")
	}
	if in.Password != in.Password2 {
		return nil, failValidation("Passwords do not match")
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, failValidation("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, in.Username, in.Email, string(hash))
	if errors.Is(err, domain.ErrConflict) {
		// Lost the race against a concurrent registration; the unique
		// constraint is the check that counts.
		return nil, failValidation("User with this email already exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the identity.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrIncorrectUsername
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// StartSession creates a session bound to the user and returns its token.
func (s *AuthService) StartSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.Create(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token back to its user. An unknown
// token, an expired session or a session whose user no longer exists all
// leave the caller anonymous.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// LoginSSO creates a session for an identity already authenticated by the
// OIDC provider, provisioning the account on first login.
func (s *AuthService) LoginSSO(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByUsername(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		// SSO accounts carry no local password.
		user, err = s.users.Create(ctx, email, email, "")
		if errors.Is(err, domain.ErrConflict) {
			user, err = s.users.GetByUsername(ctx, email)
		}
	}
	if err != nil {
		return "", err
	}
	return s.StartSession(ctx, user.ID)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
