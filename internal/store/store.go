// Package store is the persistence gateway. Every method takes the caller's
// context and returns apperr-classified errors for missing rows and
// duplicates; anything else is passed through for the caller to treat as
// internal.
package store

import (
	"context"
	"errors"
	"fmt"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// notFound maps gorm's missing-row error to a NotFound error naming what.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf(what)
	}
	return err
}

func logActivity(tx *gorm.DB, action, details string) error {
	entry := models.ActivityLog{Action: action, Details: details}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// compareAndSet moves row id of model from one status to another. A row that
// changed status in the meantime yields InvalidTransition.
func compareAndSet(tx *gorm.DB, model any, id uint, from, to string, entity string) error {
	res := tx.Model(model).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.InvalidTransition,
			fmt.Sprintf("%s %d is no longer %s", entity, id, from))
	}
	return nil
}
