package services

import (
	"context"
	"strings"
	"time"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/store"
	"heartsupport/internal/utils"
)

const settingsCacheKey = "site_settings"

// SettingsService serves the site settings from a short-lived cache.
type SettingsService struct {
	store *store.Store
	cache *utils.TTLCache[models.SiteSettings]
}

func NewSettingsService(st *store.Store) *SettingsService {
	cache, err := utils.NewTTLCache[models.SiteSettings](1, 30*time.Second)
	if err != nil {
		panic(err)
	}
	return &SettingsService{store: st, cache: cache}
}

func (s *SettingsService) Get(ctx context.Context) (models.SiteSettings, error) {
	if st, ok := s.cache.Get(settingsCacheKey); ok {
		return st, nil
	}
	st, err := s.store.Settings(ctx)
	if err != nil {
		return models.SiteSettings{}, err
	}
	s.cache.Set(settingsCacheKey, *st)
	return *st, nil
}

func (s *SettingsService) Update(ctx context.Context, st models.SiteSettings) (models.SiteSettings, error) {
	st.SiteName = strings.TrimSpace(st.SiteName)
	st.SupportEmail = strings.TrimSpace(st.SupportEmail)
	switch {
	case st.SiteName == "":
		return st, apperr.Validation("Site name is required")
	case len(st.SiteName) > 100:
		return st, apperr.Validation("Site name too long (max 100 characters)")
	case st.MaxPosts < 0:
		return st, apperr.Validation("Max posts per day must not be negative")
	case st.SupportEmail != "" && !strings.Contains(st.SupportEmail, "@"):
		return st, apperr.Validation("Invalid support email")
	}

	if err := s.store.SaveSettings(ctx, &st); err != nil {
		return st, err
	}
	s.cache.Delete(settingsCacheKey)
	return st, nil
}
