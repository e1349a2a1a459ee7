package models

import (
	"time"
)

// ActivityLog is append-only.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

const (
	ActionPostCreated     = "post_created"
	ActionPostEdited      = "post_edited"
	ActionPostDeleted     = "post_deleted"
	ActionUserRegistered  = "user_registered"
	ActionUserEdited      = "user_edited"
	ActionUserDeleted     = "user_deleted"
	ActionReportCreated   = "report_created"
	ActionSettingsUpdated = "settings_updated"
)

// TransitionAction names the activity entry for a status change, e.g. "post_approved".
func TransitionAction(entity, to string) string {
	return entity + "_" + to
}

func (ActivityLog) TableName() string {
	return "activity_log"
}
