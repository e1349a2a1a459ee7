package models

import (
	"time"
)

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

const MaxPostLength = 2000

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Likes       int        `gorm:"default:0;not null" json:"likes"`
	Status      PostStatus `gorm:"size:20;default:'approved';not null;index" json:"status"`
	AnonymousID string     `gorm:"size:50;not null" json:"anonymous_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`

	// Not persisted, filled for responses
	Comments    int    `gorm:"-" json:"comments"`
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
}
