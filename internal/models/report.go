package models

import (
	"time"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	PostID     uint         `gorm:"not null;index" json:"post_id"`
	Post       *Post        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	ReportedBy string       `gorm:"size:255" json:"reported_by"`
	Reason     string       `gorm:"type:text;not null" json:"reason"`
	ReportType string       `gorm:"size:50;default:'Other'" json:"report_type"`
	Status     ReportStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}
