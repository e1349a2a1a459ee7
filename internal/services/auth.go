package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/store"
)

const MinPasswordLength = 6

type AuthService struct {
	store    *store.Store
	verifier CredentialVerifier
}

func NewAuthService(st *store.Store, verifier CredentialVerifier) *AuthService {
	return &AuthService{store: st, verifier: verifier}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail requires a non-empty local part and domain around the last "@".
func validateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if len(email) > 255 || at < 1 || at == len(email)-1 {
		return apperr.Validation("Invalid email address")
	}
	return nil
}

// Register creates an active account. Emails are compared case-insensitively.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, apperr.Validation("Password must be at least 6 characters")
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &models.User{Email: email, PasswordHash: hash, Status: models.UserActive}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail identically; banned accounts fail before the password
// is checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredential
	}
	if err != nil {
		return nil, err
	}
	if u.IsBanned() {
		return nil, apperr.ErrSuspended
	}
	if !s.verifier.Verify(u.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredential
	}
	return u, nil
}

// SessionUser resolves a session's user id. Missing or banned users are
// reported as Unauthorized so a stale session cannot act.
func (s *AuthService) SessionUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if u.IsBanned() {
		return nil, apperr.ErrSuspended
	}
	return u, nil
}
