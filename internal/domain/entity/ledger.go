package entity

import (
	"time"
)

// Direction filters the ledger relative to the caller
type Direction string

// Ledger directions
const (
	DirectionAll      Direction = "all"
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// LedgerView selects whose transactions are listed
type LedgerView string

// Ledger views
const (
	ViewYou      LedgerView = "you"
	ViewEveryone LedgerView = "everyone"
)

// Pagination bounds
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (MaxPage-1)*MaxPageLimit well inside int32
	MaxPage = 1_000_000
)

// TransactionFilter selects a page of the ledger of one workspace
type TransactionFilter struct {
	WorkspaceID int64
	ProfileID   int64 // Caller; used by DirectionSent/Received and ViewYou
	Direction   Direction
	View        LedgerView
	From        *time.Time // Inclusive, UTC
	To          *time.Time // Exclusive, UTC
	Search      string     // Case-insensitive substring of the message
	Page        int
	Limit       int
}

// Normalize applies defaults and clamps paging values
func (f *TransactionFilter) Normalize() {
	if f.Direction == "" {
		f.Direction = DirectionAll
	}
	if f.View == "" {
		f.View = ViewYou
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
}

// Offset is the number of rows skipped before the page
func (f *TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes where a page sits in the full result
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination computes page counters
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// TransactionPage is one page of the ledger
type TransactionPage struct {
	Transactions []*Transaction
	Pagination   Pagination
}

// LeaderboardPeriod selects the leaderboard window
type LeaderboardPeriod string

// Leaderboard periods
const (
	PeriodMonth LeaderboardPeriod = "month"
	PeriodAll   LeaderboardPeriod = "all"
)

// LeaderboardEntry is a member ranked by karma received
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	ProfileID     int64  `json:"profileId,string"`
	DisplayName   string `json:"displayName"`
	Department    string `json:"department,omitempty"`
	TotalReceived int64  `json:"totalReceived"`
	TransferCount int64  `json:"transferCount"`
}
