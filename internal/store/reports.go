package store

import (
	"context"
	"fmt"

	"heartsupport/internal/models"
	"heartsupport/internal/moderation"

	"gorm.io/gorm"
)

// CreateReport files a pending report against an existing post.
func (s *Store) CreateReport(ctx context.Context, r *models.Report) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", r.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFound(gorm.ErrRecordNotFound, "Post")
		}
		r.Status = models.ReportPending
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		return logActivity(tx, models.ActionReportCreated,
			fmt.Sprintf("report %d on post %d (%s)", r.ID, r.PostID, r.ReportType))
	})
}

// ReportByID loads a report together with the reported post.
func (s *Store) ReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var r models.Report
	if err := s.conn(ctx).Preload("Post").First(&r, id).Error; err != nil {
		return nil, notFound(err, "Report")
	}
	return &r, nil
}

type ReportFilter struct {
	Status models.ReportStatus
	Limit  int
}

func (s *Store) ListReports(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	q := s.conn(ctx).Model(&models.Report{}).Preload("Post")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	reports := []models.Report{}
	if err := q.Order(newestFirst).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// TransitionReport resolves or dismisses a pending report.
func (s *Store) TransitionReport(ctx context.Context, id uint, to models.ReportStatus) (*models.Report, error) {
	var r models.Report
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return notFound(err, "Report")
		}
		if err := moderation.Reports.Transition(r.Status, to); err != nil {
			return err
		}
		if err := compareAndSet(tx, &models.Report{}, id, string(r.Status), string(to), "report"); err != nil {
			return err
		}
		r.Status = to
		return logActivity(tx, models.TransitionAction("report", string(to)),
			fmt.Sprintf("report %d on post %d", id, r.PostID))
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
