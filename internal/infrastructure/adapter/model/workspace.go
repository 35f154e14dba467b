package model

import (
	"time"
)

// Workspace represents the database model for workspaces
type Workspace struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Active    bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceSettings represents the transfer rules of a workspace, 1:1 with Workspace
type WorkspaceSettings struct {
	WorkspaceID             int64     `gorm:"primaryKey;autoIncrement:false"`
	CurrencyName            string    `gorm:"size:50;not null"`
	MonthlyAllowance        int64     `gorm:"not null;check:chk_workspace_settings_allowance,monthly_allowance > 0"`
	MinTransactionAmount    int64     `gorm:"not null;check:chk_workspace_settings_min,min_transaction_amount >= 1"`
	MaxTransactionAmount    int64     `gorm:"not null;check:chk_workspace_settings_bounds,min_transaction_amount <= max_transaction_amount"`
	DailyLimitPercentage    int       `gorm:"not null;check:chk_workspace_settings_daily_pct,daily_limit_percentage BETWEEN 1 AND 100"`
	RewardApprovalThreshold int64     `gorm:"not null"`
	CreatedAt               time.Time `gorm:"not null"`
	UpdatedAt               time.Time `gorm:"not null"`
}

// TableName specifies the table name for WorkspaceSettings
func (WorkspaceSettings) TableName() string {
	return "workspace_settings"
}
