package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/moderation"

	"gorm.io/gorm"
)

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return &u, nil
}

// UserByEmail looks up by the normalized (lowercase) address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, notFound(err, "User")
	}
	return &u, nil
}

// CreateUser inserts u. A clash on email yields DuplicateUser.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateUser
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrDuplicateUser
			}
			return err
		}
		return logActivity(tx, models.ActionUserRegistered, fmt.Sprintf("user %d registered", u.ID))
	})
}

// UpdateUserEmail changes the address of a user, keeping it unique.
func (s *Store) UpdateUserEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return notFound(err, "User")
		}
		if u.Email == email {
			return nil
		}
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateUser
		}
		if err := tx.Model(&u).UpdateColumn("email", email).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrDuplicateUser
			}
			return err
		}
		u.Email = email
		return logActivity(tx, models.ActionUserEdited, fmt.Sprintf("user %d email changed", id))
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TransitionUser applies a ban or unban.
func (s *Store) TransitionUser(ctx context.Context, id uint, to models.UserStatus) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return notFound(err, "User")
		}
		if err := moderation.Users.Transition(u.Status, to); err != nil {
			return err
		}
		if err := compareAndSet(tx, &models.User{}, id, string(u.Status), string(to), "user"); err != nil {
			return err
		}
		u.Status = to
		return logActivity(tx, models.TransitionAction("user", string(to)), fmt.Sprintf("user %d (%s)", id, u.Email))
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user, its posts and the reports on those posts.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return notFound(err, "User")
		}
		postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&u).Error; err != nil {
			return err
		}
		return logActivity(tx, models.ActionUserDeleted, fmt.Sprintf("user %d (%s)", id, u.Email))
	})
}

type UserFilter struct {
	Query  string
	Status models.UserStatus
	Limit  int
}

func (s *Store) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	q := s.conn(ctx).Model(&models.User{})
	if f.Query != "" {
		q = q.Where("email LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	users := []models.User{}
	if err := q.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
