package repository

import (
	"context"
	"errors"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyUsageRepository implements DailyUsageRepository interface using GORM
type DailyUsageRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDailyUsageRepository creates a new DailyUsageRepository instance
func NewDailyUsageRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *DailyUsageRepository {
	return &DailyUsageRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func usageKey(day time.Time) string {
	return entity.UsageDay(day).Format(entity.DayLayout)
}

// GetAmountSent returns what profileID sent on the UTC day containing day
func (r *DailyUsageRepository) GetAmountSent(ctx context.Context, profileID int64, day time.Time) (int64, error) {
	var m model.DailyUsage
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND usage_date = ?", profileID, usageKey(day)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, handleDatabaseError(r.logger, r.errorClassifier, "getting daily usage", err, errs.ErrNotFound, map[string]any{
			"profile_id": profileID,
			"usage_date": usageKey(day),
		})
	}
	return m.AmountSent, nil
}

// Increment adds amount to the running total of the day in a single upsert
func (r *DailyUsageRepository) Increment(ctx context.Context, profileID int64, day time.Time, amount int64) error {
	m := model.DailyUsage{
		ProfileID:  profileID,
		UsageDate:  usageKey(day),
		AmountSent: amount,
		UpdatedAt:  r.timeProvider.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}, {Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"amount_sent": gorm.Expr("daily_usage.amount_sent + excluded.amount_sent"),
			"updated_at":  gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&m).Error
	if err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "incrementing daily usage", err, errs.ErrNotFound, map[string]any{
			"profile_id": profileID,
			"usage_date": m.UsageDate,
			"amount":     amount,
		})
	}
	return nil
}
