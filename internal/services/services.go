package services

import (
	"time"

	"heartsupport/internal/store"
)

// CredentialVerifier hashes new passwords and checks presented ones.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Services bundles everything the handlers depend on.
type Services struct {
	Auth       *AuthService
	Posts      *PostService
	Moderation *ModerationService
	Settings   *SettingsService
}

func New(st *store.Store, verifier CredentialVerifier) *Services {
	settings := NewSettingsService(st)
	return &Services{
		Auth:       NewAuthService(st, verifier),
		Posts:      NewPostService(st, settings),
		Moderation: NewModerationService(st),
		Settings:   settings,
	}
}

// startOfDay returns local midnight for t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
