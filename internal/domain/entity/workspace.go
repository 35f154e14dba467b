package entity

import (
	"fmt"
	"time"

	errs "github.com/claimsy/karma/internal/domain/error"
)

// DefaultCurrencyName is used when a workspace has not named its currency
const DefaultCurrencyName = "karma"

// Workspace is a tenant. Every account, setting and transaction belongs to exactly one.
type Workspace struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkspaceSettings holds the transfer rules of a workspace
type WorkspaceSettings struct {
	WorkspaceID             int64
	CurrencyName            string
	MonthlyAllowance        int64 // Added to every active member once per month
	MinTransactionAmount    int64
	MaxTransactionAmount    int64
	DailyLimitPercentage    int   // Share of the monthly allowance a member may send per day
	RewardApprovalThreshold int64 // Redemptions above this need approval; not used by transfers
}

// NewWorkspaceSettings builds settings and enforces their invariants
func NewWorkspaceSettings(
	workspaceID int64,
	currencyName string,
	monthlyAllowance, minAmount, maxAmount int64,
	dailyLimitPercentage int,
	rewardApprovalThreshold int64,
) (*WorkspaceSettings, error) {
	if currencyName == "" {
		currencyName = DefaultCurrencyName
	}

	s := &WorkspaceSettings{
		WorkspaceID:             workspaceID,
		CurrencyName:            currencyName,
		MonthlyAllowance:        monthlyAllowance,
		MinTransactionAmount:    minAmount,
		MaxTransactionAmount:    maxAmount,
		DailyLimitPercentage:    dailyLimitPercentage,
		RewardApprovalThreshold: rewardApprovalThreshold,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings invariants
func (s *WorkspaceSettings) Validate() error {
	switch {
	case s.WorkspaceID <= 0:
		return fmt.Errorf("%w: workspace id must be positive", errs.ErrInvalidRequest)
	case s.MonthlyAllowance <= 0:
		return fmt.Errorf("%w: monthly allowance must be positive", errs.ErrInvalidRequest)
	case s.MinTransactionAmount < 1:
		return fmt.Errorf("%w: minimum transaction amount must be at least 1", errs.ErrInvalidRequest)
	case s.MinTransactionAmount > s.MaxTransactionAmount:
		return fmt.Errorf("%w: minimum transaction amount %d exceeds maximum %d",
			errs.ErrInvalidRequest, s.MinTransactionAmount, s.MaxTransactionAmount)
	case s.DailyLimitPercentage <= 0 || s.DailyLimitPercentage > 100:
		return fmt.Errorf("%w: daily limit percentage must be within 1..100, got %d",
			errs.ErrInvalidRequest, s.DailyLimitPercentage)
	case s.RewardApprovalThreshold < 0:
		return fmt.Errorf("%w: reward approval threshold cannot be negative", errs.ErrInvalidRequest)
	}
	return nil
}

// DailyLimit is floor(monthly_allowance * daily_limit_percentage / 100)
func (s *WorkspaceSettings) DailyLimit() int64 {
	return s.MonthlyAllowance * int64(s.DailyLimitPercentage) / 100
}

// AmountInRange checks amount against the inclusive transaction bounds
func (s *WorkspaceSettings) AmountInRange(amount int64) bool {
	return amount >= s.MinTransactionAmount && amount <= s.MaxTransactionAmount
}
