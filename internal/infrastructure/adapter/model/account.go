package model

import (
	"time"
)

// Account represents the database model for member accounts.
// The CHECK constraints back the non-negative balance invariant.
type Account struct {
	ID                int64     `gorm:"primaryKey;autoIncrement:false"`
	WorkspaceID       int64     `gorm:"not null;index"`
	DisplayName       string    `gorm:"size:255;not null"`
	Email             string    `gorm:"size:255"`
	Role              string    `gorm:"size:20;not null;check:chk_accounts_role,role IN ('employee','admin','super_admin')"`
	Department        string    `gorm:"size:100"`
	GivingBalance     int64     `gorm:"not null;check:chk_accounts_giving_balance,giving_balance >= 0"`
	RedeemableBalance int64     `gorm:"not null;check:chk_accounts_redeemable_balance,redeemable_balance >= 0"`
	Active            bool      `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
