package repository

import (
	"context"
	"fmt"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountModelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		ID:                m.ID,
		WorkspaceID:       m.WorkspaceID,
		DisplayName:       m.DisplayName,
		Email:             m.Email,
		Role:              entity.Role(m.Role),
		Department:        m.Department,
		GivingBalance:     m.GivingBalance,
		RedeemableBalance: m.RedeemableBalance,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *AccountRepository) handleError(operation string, err error, accountID int64) error {
	return handleDatabaseError(r.logger, r.errorClassifier, operation, err, errs.ErrAccountNotFound, map[string]any{
		"profile_id": accountID,
	})
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	var m model.Account
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting account", err, id)
	}
	return accountModelToEntity(&m), nil
}

// LockByID reads an account with SELECT ... FOR UPDATE.
// The sqlite dialect drops the locking clause; its writer lock serializes instead.
func (r *AccountRepository) LockByID(ctx context.Context, id int64) (*entity.Account, error) {
	var m model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.handleError("locking account", err, id)
	}

	r.logger.Debug("Account locked", map[string]any{
		"profile_id":     id,
		"giving_balance": m.GivingBalance,
	})
	return accountModelToEntity(&m), nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := model.Account{
		ID:                account.ID,
		WorkspaceID:       account.WorkspaceID,
		DisplayName:       account.DisplayName,
		Email:             account.Email,
		Role:              string(account.Role),
		Department:        account.Department,
		GivingBalance:     account.GivingBalance,
		RedeemableBalance: account.RedeemableBalance,
		Active:            account.Active,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.handleError("creating account", err, account.ID)
	}

	r.logger.Info("Account created successfully", map[string]any{
		"profile_id":   account.ID,
		"workspace_id": account.WorkspaceID,
		"role":         string(account.Role),
	})
	return nil
}

// ListActiveByWorkspace returns the active accounts of a workspace ordered by ID
func (r *AccountRepository) ListActiveByWorkspace(ctx context.Context, workspaceID int64) ([]*entity.Account, error) {
	var models []model.Account
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND active = ?", workspaceID, true).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "listing accounts", err, errs.ErrAccountNotFound, map[string]any{
			"workspace_id": workspaceID,
		})
	}

	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, accountModelToEntity(&models[i]))
	}
	return accounts, nil
}

// DebitGiving subtracts amount from the giving balance only when enough is available
func (r *AccountRepository) DebitGiving(ctx context.Context, id, amount int64) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND giving_balance >= ?", id, amount).
		Updates(map[string]any{
			"giving_balance": gorm.Expr("giving_balance - ?", amount),
			"updated_at":     r.timeProvider.Now().UTC(),
		})
	if result.Error != nil {
		return r.handleError("debiting giving balance", result.Error, id)
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		r.logger.Warn("Insufficient giving balance", map[string]any{
			"profile_id": id,
			"amount":     amount,
		})
		return errs.NewValidationError(entity.MsgInsufficientBalance)
	}
	return nil
}

// CreditRedeemable adds amount to the redeemable balance
func (r *AccountRepository) CreditRedeemable(ctx context.Context, id, amount int64) error {
	return r.addTo(ctx, "redeemable_balance", id, amount)
}

// AddGivingBalance adds amount to the giving balance
func (r *AccountRepository) AddGivingBalance(ctx context.Context, id, amount int64) error {
	return r.addTo(ctx, "giving_balance", id, amount)
}

func (r *AccountRepository) addTo(ctx context.Context, column string, id, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit amount must not be negative", errs.ErrInvalidRequest)
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", amount),
			"updated_at": r.timeProvider.Now().UTC(),
		})
	if result.Error != nil {
		return r.handleError("crediting "+column, result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
