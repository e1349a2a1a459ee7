package services

import (
	"context"
	"log/slog"
	"time"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/store"
)

const DefaultActivityLimit = 20

// ModerationService backs the admin dashboard.
type ModerationService struct {
	store *store.Store
	now   func() time.Time
}

func NewModerationService(st *store.Store) *ModerationService {
	return &ModerationService{store: st, now: time.Now}
}

func ParsePostStatus(s string) (models.PostStatus, error) {
	switch st := models.PostStatus(s); st {
	case "", models.PostPending, models.PostApproved, models.PostRejected:
		return st, nil
	}
	return "", apperr.Validation("Unknown post status: " + s)
}

func ParseReportStatus(s string) (models.ReportStatus, error) {
	switch st := models.ReportStatus(s); st {
	case "", models.ReportPending, models.ReportResolved, models.ReportDismissed:
		return st, nil
	}
	return "", apperr.Validation("Unknown report status: " + s)
}

func ParseUserStatus(s string) (models.UserStatus, error) {
	switch st := models.UserStatus(s); st {
	case "", models.UserActive, models.UserBanned, models.UserAdmin:
		return st, nil
	}
	return "", apperr.Validation("Unknown user status: " + s)
}

func (s *ModerationService) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx, s.now())
}

func (s *ModerationService) Activity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.store.RecentActivity(ctx, limit)
}

// Posts

func (s *ModerationService) Posts(ctx context.Context, f store.PostFilter) ([]models.Post, error) {
	posts, err := s.store.ListPosts(ctx, f)
	if err != nil {
		return nil, err
	}
	return decorate(posts), nil
}

func (s *ModerationService) EditPost(ctx context.Context, id uint, content string) (*models.Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	p, err := s.store.UpdatePostContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	return &decorate([]models.Post{*p})[0], nil
}

func (s *ModerationService) ApprovePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.transitionPost(ctx, id, models.PostApproved)
}

func (s *ModerationService) RejectPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.transitionPost(ctx, id, models.PostRejected)
}

func (s *ModerationService) transitionPost(ctx context.Context, id uint, to models.PostStatus) (*models.Post, error) {
	p, err := s.store.TransitionPost(ctx, id, to)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "post moderated", "post_id", id, "status", to)
	return &decorate([]models.Post{*p})[0], nil
}

func (s *ModerationService) DeletePost(ctx context.Context, id uint) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "post deleted", "post_id", id)
	return nil
}

// Users

func (s *ModerationService) Users(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	return s.store.ListUsers(ctx, f)
}

func (s *ModerationService) EditUser(ctx context.Context, id uint, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return s.store.UpdateUserEmail(ctx, id, email)
}

func (s *ModerationService) BanUser(ctx context.Context, id uint) (*models.User, error) {
	return s.transitionUser(ctx, id, models.UserBanned)
}

func (s *ModerationService) UnbanUser(ctx context.Context, id uint) (*models.User, error) {
	return s.transitionUser(ctx, id, models.UserActive)
}

func (s *ModerationService) transitionUser(ctx context.Context, id uint, to models.UserStatus) (*models.User, error) {
	u, err := s.store.TransitionUser(ctx, id, to)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user moderated", "user_id", id, "status", to)
	return u, nil
}

// DeleteUser removes a user with all their posts. Admin accounts are kept.
func (s *ModerationService) DeleteUser(ctx context.Context, id uint) error {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Admin accounts cannot be deleted")
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

// Reports

func (s *ModerationService) Reports(ctx context.Context, f store.ReportFilter) ([]models.Report, error) {
	return s.store.ListReports(ctx, f)
}

func (s *ModerationService) Report(ctx context.Context, id uint) (*models.Report, error) {
	return s.store.ReportByID(ctx, id)
}

func (s *ModerationService) ResolveReport(ctx context.Context, id uint) (*models.Report, error) {
	return s.transitionReport(ctx, id, models.ReportResolved)
}

func (s *ModerationService) DismissReport(ctx context.Context, id uint) (*models.Report, error) {
	return s.transitionReport(ctx, id, models.ReportDismissed)
}

func (s *ModerationService) transitionReport(ctx context.Context, id uint, to models.ReportStatus) (*models.Report, error) {
	r, err := s.store.TransitionReport(ctx, id, to)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "report moderated", "report_id", id, "status", to)
	return r, nil
}
