package model

import (
	"time"
)

// DailyUsage represents the amount a member sent on one UTC day.
// UsageDate is stored as YYYY-MM-DD so the key compares the same on every driver.
type DailyUsage struct {
	ProfileID  int64     `gorm:"primaryKey;autoIncrement:false"`
	UsageDate  string    `gorm:"primaryKey;size:10"`
	AmountSent int64     `gorm:"not null;check:chk_daily_usage_amount,amount_sent >= 0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for DailyUsage
func (DailyUsage) TableName() string {
	return "daily_usage"
}
