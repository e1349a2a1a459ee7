package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heartsupport/internal/models"

	"gorm.io/gorm"
)

type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	BannedUsers    int64 `json:"bannedUsers"`
	TotalPosts     int64 `json:"totalPosts"`
	PendingPosts   int64 `json:"pendingPosts"`
	PendingReports int64 `json:"pendingReports"`
	PostsToday     int64 `json:"postsToday"`
}

func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	db := s.conn(ctx)
	var st Stats
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&st.TotalUsers, db.Model(&models.User{})},
		{&st.BannedUsers, db.Model(&models.User{}).Where("status = ?", models.UserBanned)},
		{&st.TotalPosts, db.Model(&models.Post{})},
		{&st.PendingPosts, db.Model(&models.Post{}).Where("status = ?", models.PostPending)},
		{&st.PendingReports, db.Model(&models.Report{}).Where("status = ?", models.ReportPending)},
		{&st.PostsToday, db.Model(&models.Post{}).Where("created_at >= ?", now.Add(-24*time.Hour))},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	return &st, nil
}

func (s *Store) RecentActivity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}
	err := s.conn(ctx).Order(newestFirst).Limit(limit).Find(&entries).Error
	return entries, err
}

// Settings returns the site settings row, or the defaults when it has not
// been created yet.
func (s *Store) Settings(ctx context.Context) (*models.SiteSettings, error) {
	var st models.SiteSettings
	err := s.conn(ctx).First(&st, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveSettings upserts the settings row.
func (s *Store) SaveSettings(ctx context.Context, st *models.SiteSettings) error {
	st.ID = models.SettingsID
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(st).Error; err != nil {
			return err
		}
		return logActivity(tx, models.ActionSettingsUpdated, fmt.Sprintf("site %q", st.SiteName))
	})
}
