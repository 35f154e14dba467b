package model

import (
	"time"
)

// ResetHistory represents one monthly allowance top-up of a workspace.
// The unique index on (workspace_id, reset_month) is what makes resets idempotent.
type ResetHistory struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement:false"`
	WorkspaceID         int64     `gorm:"not null;uniqueIndex:idx_reset_history_workspace_month,priority:1"`
	ResetMonth          string    `gorm:"size:7;not null;uniqueIndex:idx_reset_history_workspace_month,priority:2"`
	TriggerType         string    `gorm:"size:20;not null"`
	TriggeredBy         *int64    `gorm:"default:null"`
	ProfilesReset       int       `gorm:"not null"`
	TotalAllowanceAdded int64     `gorm:"not null"`
	Errors              string    `gorm:"type:text;not null"` // JSON array of strings
	Status              string    `gorm:"size:30;not null"`
	ExecutedAt          time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for ResetHistory
func (ResetHistory) TableName() string {
	return "reset_history"
}
