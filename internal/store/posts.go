package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heartsupport/internal/models"
	"heartsupport/internal/moderation"

	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type PostFilter struct {
	Query  string
	Status models.PostStatus
	UserID uint
	Limit  int
}

func (s *Store) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, error) {
	q := s.conn(ctx).Model(&models.Post{})
	if f.Query != "" {
		q = q.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	posts := []models.Post{}
	if err := q.Order(newestFirst).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "Post")
	}
	return &p, nil
}

// CountPostsSince counts a user's posts created at or after since.
func (s *Store) CountPostsSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Post{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}

// CreatePost inserts p, bumps the owner's post_count and logs the event in
// one transaction.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", p.UserID).
			UpdateColumn("post_count", gorm.Expr("post_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound, "User")
		}
		return logActivity(tx, models.ActionPostCreated,
			fmt.Sprintf("post %d created by %s (%s)", p.ID, p.AnonymousID, p.Status))
	})
}

// IncrementLikes adds one like atomically and returns the new count.
func (s *Store) IncrementLikes(ctx context.Context, id uint) (int, error) {
	var p models.Post
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound, "Post")
		}
		return tx.Select("id", "likes").First(&p, id).Error
	})
	if err != nil {
		return 0, err
	}
	return p.Likes, nil
}

// UpdatePostContent replaces the text of a post. Status is untouched.
func (s *Store) UpdatePostContent(ctx context.Context, id uint, content string) (*models.Post, error) {
	var p models.Post
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err, "Post")
		}
		if err := tx.Model(&p).Update("content", content).Error; err != nil {
			return err
		}
		p.Content = content
		return logActivity(tx, models.ActionPostEdited, fmt.Sprintf("post %d edited", id))
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TransitionPost approves or rejects a pending post.
func (s *Store) TransitionPost(ctx context.Context, id uint, to models.PostStatus) (*models.Post, error) {
	var p models.Post
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err, "Post")
		}
		if err := moderation.Posts.Transition(p.Status, to); err != nil {
			return err
		}
		if err := compareAndSet(tx, &models.Post{}, id, string(p.Status), string(to), "post"); err != nil {
			return err
		}
		p.Status = to
		return logActivity(tx, models.TransitionAction("post", string(to)), fmt.Sprintf("post %d", id))
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post and its reports, keeping the owner's
// post_count from going negative.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Post
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err, "Post")
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		err := tx.Model(&models.User{}).Where("id = ?", p.UserID).
			UpdateColumn("post_count", gorm.Expr("CASE WHEN post_count > 0 THEN post_count - 1 ELSE 0 END")).Error
		if err != nil {
			return err
		}
		return logActivity(tx, models.ActionPostDeleted, fmt.Sprintf("post %d deleted", id))
	})
}
