package models

import (
	"time"
)

type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
	UserAdmin  UserStatus = "admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"` // stored lowercase
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Status       UserStatus `gorm:"size:20;default:'active';not null;index" json:"status"`
	PostCount    int        `gorm:"default:0;not null" json:"post_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Status == UserAdmin
}

func (u *User) IsBanned() bool {
	return u.Status == UserBanned
}
