package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/store"
	"heartsupport/internal/utils"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	maxReasonLength     = 1000
	maxReportTypeLength = 50
)

type PostService struct {
	store    *store.Store
	settings *SettingsService
	now      func() time.Time
}

func NewPostService(st *store.Store, settings *SettingsService) *PostService {
	return &PostService{store: st, settings: settings, now: time.Now}
}

// validateContent trims and bounds post text.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validation("Content and user ID are required")
	}
	if utf8.RuneCountInString(content) > models.MaxPostLength {
		return "", apperr.Validation(fmt.Sprintf("Content too long (max %d characters)", models.MaxPostLength))
	}
	return content, nil
}

func newAnonymousID() string {
	return "anonymous_user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// decorate fills the response-only fields.
func decorate(posts []models.Post) []models.Post {
	for i := range posts {
		posts[i].Comments = 0
		posts[i].ContentHTML = utils.RenderMarkdown(posts[i].Content)
	}
	return posts
}

// List returns approved posts, newest first.
func (s *PostService) List(ctx context.Context, limit int) ([]models.Post, error) {
	if limit < 1 || limit > MaxListLimit {
		return nil, apperr.Validation(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	posts, err := s.store.ListPosts(ctx, store.PostFilter{Status: models.PostApproved, Limit: limit})
	if err != nil {
		return nil, err
	}
	return decorate(posts), nil
}

// Create publishes a post for userID. The initial status follows the
// require-approval setting.
func (s *PostService) Create(ctx context.Context, userID uint, content string) (*models.Post, error) {
	if userID == 0 {
		return nil, apperr.Validation("Content and user ID are required")
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsBanned() {
		return nil, apperr.ErrSuspended
	}
	if settings.MaxPosts > 0 {
		n, err := s.store.CountPostsSince(ctx, userID, startOfDay(s.now()))
		if err != nil {
			return nil, err
		}
		if n >= int64(settings.MaxPosts) {
			return nil, apperr.Validation(fmt.Sprintf("Daily post limit reached (max %d per day)", settings.MaxPosts))
		}
	}

	status := models.PostApproved
	if settings.RequireApproval {
		status = models.PostPending
	}
	p := &models.Post{
		UserID:      userID,
		Content:     content,
		Status:      status,
		AnonymousID: newAnonymousID(),
	}
	if err := s.store.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "post created", "post_id", p.ID, "status", p.Status)
	return &decorate([]models.Post{*p})[0], nil
}

// Like increments the like counter and returns the new total.
func (s *PostService) Like(ctx context.Context, id uint) (int, error) {
	return s.store.IncrementLikes(ctx, id)
}

// Report flags a post for moderation.
func (s *PostService) Report(ctx context.Context, postID uint, reportedBy, reason, reportType string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	reportType = strings.TrimSpace(reportType)
	reportedBy = strings.TrimSpace(reportedBy)
	if reason == "" {
		return nil, apperr.Validation("Reason is required")
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, apperr.Validation(fmt.Sprintf("Reason too long (max %d characters)", maxReasonLength))
	}
	if reportType == "" {
		reportType = "Other"
	}
	if utf8.RuneCountInString(reportType) > maxReportTypeLength {
		return nil, apperr.Validation("Report type too long")
	}
	if reportedBy == "" {
		reportedBy = "anonymous"
	}
	if len(reportedBy) > 255 {
		return nil, apperr.Validation("Reporter too long")
	}

	r := &models.Report{PostID: postID, ReportedBy: reportedBy, Reason: reason, ReportType: reportType}
	if err := s.store.CreateReport(ctx, r); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "post reported", "post_id", postID, "report_id", r.ID)
	return r, nil
}
