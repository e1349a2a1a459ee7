package db

import (
	"context"
	"fmt"
	"log/slog"

	"heartsupport/internal/models"

	"gorm.io/gorm"
)

type SeedOptions struct {
	AdminEmail        string
	AdminPasswordHash string
}

var samplePosts = []models.Post{
	{
		Content:     "Going through a difficult breakup after discovering my partner was being dishonest. The hardest part is learning to trust again. Anyone else been through something similar?",
		Likes:       12,
		AnonymousID: "anonymous_user_1",
	},
	{
		Content:     "Want to share that therapy has been incredibly helpful in my healing journey. If you're struggling, please consider reaching out to a professional. You deserve support and happiness.",
		Likes:       24,
		AnonymousID: "anonymous_user_2",
	},
	{
		Content:     "Learning to love myself again has been the most important part of moving forward. Some days are harder than others, but I'm getting there. Sending love to everyone on their journey.",
		Likes:       31,
		AnonymousID: "anonymous_user_3",
	},
}

// Seed ensures the settings row exists and inserts the admin account,
// sample posts and sample reports when the users table is empty.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		defaults := models.DefaultSettings()
		if err := tx.Where(models.SiteSettings{ID: models.SettingsID}).
			Attrs(defaults).FirstOrCreate(&models.SiteSettings{}).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}

		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			slog.Debug("users already present, skipping seed")
			return nil
		}

		admin := models.User{
			Email:        opts.AdminEmail,
			PasswordHash: opts.AdminPasswordHash,
			Status:       models.UserAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		posts := make([]models.Post, len(samplePosts))
		for i, p := range samplePosts {
			p.UserID = admin.ID
			p.Status = models.PostApproved
			posts[i] = p
		}
		if err := tx.Create(&posts).Error; err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		if err := tx.Model(&admin).UpdateColumn("post_count", len(posts)).Error; err != nil {
			return err
		}

		reports := []models.Report{
			{
				PostID:     posts[1].ID,
				ReportedBy: "user@example.com",
				Reason:     "Contains inappropriate language",
				ReportType: "Inappropriate Content",
				Status:     models.ReportPending,
			},
			{
				PostID:     posts[0].ID,
				ReportedBy: "another@example.com",
				Reason:     "Repetitive content posted multiple times",
				ReportType: "Spam",
				Status:     models.ReportResolved,
			},
		}
		if err := tx.Create(&reports).Error; err != nil {
			return fmt.Errorf("seed reports: %w", err)
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		slog.Info("sample data created", "admin", opts.AdminEmail)
	}
	return seeded, nil
}
