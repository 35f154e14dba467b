package model

import (
	"time"
)

// MigrationVersion records each schema version applied to the database
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;index"`
	AppliedAt time.Time `gorm:"not null"`
	Details   string    `gorm:"type:text"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}

// All lists the domain models in dependency order for AutoMigrate
func All() []any {
	return []any{
		&Workspace{},
		&WorkspaceSettings{},
		&Account{},
		&Transaction{},
		&DailyUsage{},
		&ResetHistory{},
	}
}
