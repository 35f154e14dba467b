package model

import (
	"time"
)

// Transaction represents the database model for the append-only ledger
type Transaction struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false"`
	WorkspaceID    int64     `gorm:"not null"`
	SenderID       int64     `gorm:"not null;uniqueIndex:idx_transactions_sender_idempotency,priority:1;check:chk_transactions_parties,sender_id <> receiver_id"`
	ReceiverID     int64     `gorm:"not null"`
	Amount         int64     `gorm:"not null;check:chk_transactions_amount,amount > 0"`
	Message        string    `gorm:"type:text"`
	IdempotencyKey *string   `gorm:"size:128;uniqueIndex:idx_transactions_sender_idempotency,priority:2"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
