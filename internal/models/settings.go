package models

import (
	"time"
)

const SettingsID = 1

// SiteSettings is a single row keyed by SettingsID.
type SiteSettings struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	AutoModeration  bool      `gorm:"not null" json:"autoModeration"`
	RequireApproval bool      `gorm:"not null" json:"requireApproval"`
	AllowAnonymous  bool      `gorm:"not null" json:"allowAnonymous"`
	MaxPosts        int       `gorm:"not null" json:"maxPosts"` // per user per day, 0 = unlimited
	SiteName        string    `gorm:"size:100;not null" json:"siteName"`
	SupportEmail    string    `gorm:"size:255" json:"supportEmail"`
	Guidelines      string    `gorm:"type:text" json:"guidelines"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func DefaultSettings() SiteSettings {
	return SiteSettings{
		ID:              SettingsID,
		AutoModeration:  true,
		RequireApproval: false,
		AllowAnonymous:  true,
		MaxPosts:        10,
		SiteName:        "HeartSupport",
		SupportEmail:    "support@heartsupport.com",
		Guidelines:      "Be kind and supportive. No hate speech, harassment or spam. Respect everyone's privacy.",
	}
}

// PublicSettings is the subset exposed to anonymous visitors.
type PublicSettings struct {
	SiteName       string `json:"siteName"`
	SupportEmail   string `json:"supportEmail"`
	Guidelines     string `json:"guidelines"`
	AllowAnonymous bool   `json:"allowAnonymous"`
}

func (s SiteSettings) Public() PublicSettings {
	return PublicSettings{
		SiteName:       s.SiteName,
		SupportEmail:   s.SupportEmail,
		Guidelines:     s.Guidelines,
		AllowAnonymous: s.AllowAnonymous,
	}
}
