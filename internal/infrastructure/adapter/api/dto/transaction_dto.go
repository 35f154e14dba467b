package dto

import (
	"strconv"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
)

// SendRequest is the body of POST /transactions
type SendRequest struct {
	ReceiverID string `json:"receiverId" binding:"required,numeric"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message" binding:"max=2000"`
}

// ValidateRequest is the body of POST /transactions/validate
type ValidateRequest struct {
	ReceiverID string `json:"receiverId" binding:"required,numeric"`
	Amount     int64  `json:"amount"`
}

// TransactionResponse is the wire form of a ledger entry. Ids are strings so
// snowflake values survive JavaScript clients.
type TransactionResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	SenderID    string    `json:"senderId"`
	ReceiverID  string    `json:"receiverId"`
	Amount      int64     `json:"amount"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SendResponse is the data of a committed transfer
type SendResponse struct {
	TransactionID string              `json:"transactionId"`
	Transaction   TransactionResponse `json:"transaction"`
	Replayed      bool                `json:"replayed,omitempty"`
}

// LeaderboardEntryResponse is one ranked member
type LeaderboardEntryResponse struct {
	Rank          int    `json:"rank"`
	ProfileID     string `json:"profileId"`
	DisplayName   string `json:"displayName"`
	Department    string `json:"department,omitempty"`
	TotalReceived int64  `json:"totalReceived"`
	TransferCount int64  `json:"transferCount"`
}

// NewTransactionResponse converts a ledger entry
func NewTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          FormatID(txn.ID),
		WorkspaceID: FormatID(txn.WorkspaceID),
		SenderID:    FormatID(txn.SenderID),
		ReceiverID:  FormatID(txn.ReceiverID),
		Amount:      txn.Amount,
		Message:     txn.Message,
		CreatedAt:   txn.CreatedAt.UTC(),
	}
}

// NewTransactionList converts a page of ledger entries
func NewTransactionList(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, NewTransactionResponse(txn))
	}
	return out
}

// NewPagination converts ledger paging
func NewPagination(p entity.Pagination) *Pagination {
	return &Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

// NewLeaderboard converts leaderboard rows
func NewLeaderboard(entries []entity.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntryResponse{
			Rank:          e.Rank,
			ProfileID:     FormatID(e.ProfileID),
			DisplayName:   e.DisplayName,
			Department:    e.Department,
			TotalReceived: e.TotalReceived,
			TransferCount: e.TransferCount,
		})
	}
	return out
}

// FormatID renders an id for the wire
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
