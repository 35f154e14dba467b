package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ResetHistoryRepository implements ResetHistoryRepository interface using GORM
type ResetHistoryRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewResetHistoryRepository creates a new ResetHistoryRepository instance
func NewResetHistoryRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ResetHistoryRepository {
	return &ResetHistoryRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func encodeResetErrors(resetErrors []string) (string, error) {
	if resetErrors == nil {
		resetErrors = []string{}
	}
	raw, err := json.Marshal(resetErrors)
	if err != nil {
		return "", fmt.Errorf("%w: encoding reset errors: %s", errs.ErrInternalServer, err.Error())
	}
	return string(raw), nil
}

func resetHistoryModelToEntity(m *model.ResetHistory) (*entity.ResetHistory, error) {
	resetErrors := []string{}
	if m.Errors != "" {
		if err := json.Unmarshal([]byte(m.Errors), &resetErrors); err != nil {
			return nil, fmt.Errorf("%w: decoding reset errors of %d: %s", errs.ErrInternalServer, m.ID, err.Error())
		}
	}

	return &entity.ResetHistory{
		ID:                  m.ID,
		WorkspaceID:         m.WorkspaceID,
		ResetMonth:          m.ResetMonth,
		Trigger:             entity.ResetTrigger(m.TriggerType),
		TriggeredBy:         m.TriggeredBy,
		ProfilesReset:       m.ProfilesReset,
		TotalAllowanceAdded: m.TotalAllowanceAdded,
		Errors:              resetErrors,
		Status:              entity.ResetStatus(m.Status),
		ExecutedAt:          m.ExecutedAt.UTC(),
	}, nil
}

func (r *ResetHistoryRepository) fields(history *entity.ResetHistory) map[string]any {
	return map[string]any{
		"reset_id":     history.ID,
		"workspace_id": history.WorkspaceID,
		"reset_month":  history.ResetMonth,
	}
}

// Claim inserts the history record for a workspace month.
// The unique (workspace_id, reset_month) index turns a second claim into errs.ErrAlreadyReset.
func (r *ResetHistoryRepository) Claim(ctx context.Context, history *entity.ResetHistory) error {
	encoded, err := encodeResetErrors(history.Errors)
	if err != nil {
		return err
	}

	m := model.ResetHistory{
		ID:                  history.ID,
		WorkspaceID:         history.WorkspaceID,
		ResetMonth:          history.ResetMonth,
		TriggerType:         string(history.Trigger),
		TriggeredBy:         history.TriggeredBy,
		ProfilesReset:       history.ProfilesReset,
		TotalAllowanceAdded: history.TotalAllowanceAdded,
		Errors:              encoded,
		Status:              string(history.Status),
		ExecutedAt:          history.ExecutedAt.UTC(),
		UpdatedAt:           r.timeProvider.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Info("Reset month already claimed", r.fields(history))
			return errs.ErrAlreadyReset
		}
		return handleDatabaseError(r.logger, r.errorClassifier, "claiming reset month", err, errs.ErrNotFound, r.fields(history))
	}
	return nil
}

// Update stores the outcome of a claimed reset
func (r *ResetHistoryRepository) Update(ctx context.Context, history *entity.ResetHistory) error {
	encoded, err := encodeResetErrors(history.Errors)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.ResetHistory{}).
		Where("id = ?", history.ID).
		Updates(map[string]any{
			"profiles_reset":        history.ProfilesReset,
			"total_allowance_added": history.TotalAllowanceAdded,
			"errors":                encoded,
			"status":                string(history.Status),
			"updated_at":            r.timeProvider.Now().UTC(),
		})
	if result.Error != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "updating reset history", result.Error, errs.ErrNotFound, r.fields(history))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reset history %d", errs.ErrNotFound, history.ID)
	}
	return nil
}

// Exists reports whether the workspace month has been claimed
func (r *ResetHistoryRepository) Exists(ctx context.Context, workspaceID int64, resetMonth string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ResetHistory{}).
		Where("workspace_id = ? AND reset_month = ?", workspaceID, resetMonth).
		Count(&count).Error
	if err != nil {
		return false, handleDatabaseError(r.logger, r.errorClassifier, "checking reset history", err, errs.ErrNotFound, map[string]any{
			"workspace_id": workspaceID,
			"reset_month":  resetMonth,
		})
	}
	return count > 0, nil
}

// ListByWorkspace returns the most recent resets of a workspace, newest first
func (r *ResetHistoryRepository) ListByWorkspace(ctx context.Context, workspaceID int64, limit int) ([]*entity.ResetHistory, error) {
	if limit < 1 || limit > entity.MaxPageLimit {
		limit = entity.DefaultPageLimit
	}

	var models []model.ResetHistory
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("reset_month DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "listing reset history", err, errs.ErrNotFound, map[string]any{
			"workspace_id": workspaceID,
		})
	}

	histories := make([]*entity.ResetHistory, 0, len(models))
	for i := range models {
		h, err := resetHistoryModelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, nil
}
