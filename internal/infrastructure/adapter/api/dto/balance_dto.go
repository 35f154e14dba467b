package dto

import (
	"github.com/claimsy/karma/internal/domain/entity"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// BalanceResponse represents the API response for a member's balances
type BalanceResponse struct {
	ProfileID         string                 `json:"profileId"`
	WorkspaceID       string                 `json:"workspaceId"`
	CurrencyName      string                 `json:"currencyName"`
	GivingBalance     int64                  `json:"givingBalance"`
	RedeemableBalance int64                  `json:"redeemableBalance"`
	MonthlyAllowance  int64                  `json:"monthlyAllowance"`
	DailyLimit        *entity.DailyLimitInfo `json:"dailyLimit"`
}

// NewBalanceResponse converts a member balance
func NewBalanceResponse(b *usecase.MemberBalance) BalanceResponse {
	return BalanceResponse{
		ProfileID:         FormatID(b.ProfileID),
		WorkspaceID:       FormatID(b.WorkspaceID),
		CurrencyName:      b.CurrencyName,
		GivingBalance:     b.GivingBalance,
		RedeemableBalance: b.RedeemableBalance,
		MonthlyAllowance:  b.MonthlyAllowance,
		DailyLimit:        b.DailyLimit,
	}
}

// Reset request types
const (
	ResetTypeWorkspace = "workspace"
	ResetTypeAll       = "all"
	ResetTypeCron      = "cron"
)

// ResetRequest is the body of POST /balance/reset
type ResetRequest struct {
	Type        string `json:"type" binding:"required,oneof=workspace all cron"`
	WorkspaceID string `json:"workspaceId" binding:"omitempty,numeric"`
}

// ResetResponse is the data of a reset call
type ResetResponse struct {
	Results []entity.ResetResult `json:"results"`
}

// CronResetResponse is the data of the scheduled reset endpoint
type CronResetResponse struct {
	Summary entity.ResetSummary  `json:"summary"`
	Results []entity.ResetResult `json:"results"`
}

// ResetHistoryEntry is the wire form of a reset record
type ResetHistoryEntry struct {
	ID                  string   `json:"id"`
	ResetMonth          string   `json:"resetMonth"`
	Trigger             string   `json:"trigger"`
	TriggeredBy         string   `json:"triggeredBy,omitempty"`
	ProfilesReset       int      `json:"profilesReset"`
	TotalAllowanceAdded int64    `json:"totalAllowanceAdded"`
	Errors              []string `json:"errors"`
	Status              string   `json:"status"`
	ExecutedAt          string   `json:"executedAt"`
}

// ResetHistoryResponse is the data of GET /balance/reset
type ResetHistoryResponse struct {
	History           []ResetHistoryEntry `json:"history"`
	HasResetThisMonth bool                `json:"hasResetThisMonth"`
}

// NewResetHistoryResponse converts a reset history view
func NewResetHistoryResponse(view *usecase.ResetHistoryView) ResetHistoryResponse {
	history := make([]ResetHistoryEntry, 0, len(view.History))
	for _, h := range view.History {
		entry := ResetHistoryEntry{
			ID:                  FormatID(h.ID),
			ResetMonth:          h.ResetMonth,
			Trigger:             string(h.Trigger),
			ProfilesReset:       h.ProfilesReset,
			TotalAllowanceAdded: h.TotalAllowanceAdded,
			Errors:              h.Errors,
			Status:              string(h.Status),
			ExecutedAt:          h.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if h.TriggeredBy != nil {
			entry.TriggeredBy = FormatID(*h.TriggeredBy)
		}
		history = append(history, entry)
	}
	return ResetHistoryResponse{History: history, HasResetThisMonth: view.HasResetThisMonth}
}
