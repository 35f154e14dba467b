package repository

import (
	"context"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// WorkspaceRepository implements WorkspaceRepository interface using GORM
type WorkspaceRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWorkspaceRepository creates a new WorkspaceRepository instance
func NewWorkspaceRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WorkspaceRepository {
	return &WorkspaceRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *WorkspaceRepository) handleError(operation string, err error, workspaceID int64) error {
	return handleDatabaseError(r.logger, r.errorClassifier, operation, err, errs.ErrWorkspaceNotFound, map[string]any{
		"workspace_id": workspaceID,
	})
}

func workspaceModelToEntity(m *model.Workspace) *entity.Workspace {
	return &entity.Workspace{
		ID:        m.ID,
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*entity.Workspace, error) {
	var m model.Workspace
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting workspace", err, id)
	}
	return workspaceModelToEntity(&m), nil
}

// GetSettings retrieves the transfer rules of a workspace
func (r *WorkspaceRepository) GetSettings(ctx context.Context, workspaceID int64) (*entity.WorkspaceSettings, error) {
	var m model.WorkspaceSettings
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		First(&m).Error
	if err != nil {
		return nil, r.handleError("getting workspace settings", err, workspaceID)
	}

	return &entity.WorkspaceSettings{
		WorkspaceID:             m.WorkspaceID,
		CurrencyName:            m.CurrencyName,
		MonthlyAllowance:        m.MonthlyAllowance,
		MinTransactionAmount:    m.MinTransactionAmount,
		MaxTransactionAmount:    m.MaxTransactionAmount,
		DailyLimitPercentage:    m.DailyLimitPercentage,
		RewardApprovalThreshold: m.RewardApprovalThreshold,
	}, nil
}

// ListActive returns every active workspace ordered by ID
func (r *WorkspaceRepository) ListActive(ctx context.Context) ([]*entity.Workspace, error) {
	var models []model.Workspace
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing workspaces", err, 0)
	}

	workspaces := make([]*entity.Workspace, 0, len(models))
	for i := range models {
		workspaces = append(workspaces, workspaceModelToEntity(&models[i]))
	}
	return workspaces, nil
}

// Create inserts a workspace together with its settings
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace, settings *entity.WorkspaceSettings) error {
	now := r.timeProvider.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws := model.Workspace{
			ID:        workspace.ID,
			Name:      workspace.Name,
			Active:    workspace.Active,
			CreatedAt: workspace.CreatedAt,
			UpdatedAt: workspace.UpdatedAt,
		}
		if err := tx.Create(&ws).Error; err != nil {
			return err
		}

		s := model.WorkspaceSettings{
			WorkspaceID:             workspace.ID,
			CurrencyName:            settings.CurrencyName,
			MonthlyAllowance:        settings.MonthlyAllowance,
			MinTransactionAmount:    settings.MinTransactionAmount,
			MaxTransactionAmount:    settings.MaxTransactionAmount,
			DailyLimitPercentage:    settings.DailyLimitPercentage,
			RewardApprovalThreshold: settings.RewardApprovalThreshold,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		return r.handleError("creating workspace", err, workspace.ID)
	}

	r.logger.Info("Workspace created successfully", map[string]any{
		"workspace_id": workspace.ID,
		"name":         workspace.Name,
	})
	return nil
}
