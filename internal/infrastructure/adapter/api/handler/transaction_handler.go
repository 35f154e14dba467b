package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients resend a transfer without sending twice
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	ledger       usecase.LedgerUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactions usecase.TransactionUseCase,
	ledger usecase.LedgerUseCase,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		ledger:       ledger,
		logger:       logger,
	}
}

// Send handles POST /transactions
func (h *TransactionHandler) Send(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "send karma", domainerr.ErrUnauthorized)
		return
	}

	var req dto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receiverID, ok := parseID(req.ReceiverID)
	if !ok {
		respondError(c, h.logger, "send karma", fmt.Errorf("%w: invalid receiverId", domainerr.ErrInvalidRequest))
		return
	}

	result, err := h.transactions.ExecuteTransaction(c.Request.Context(), usecase.TransferRequest{
		SenderID:       member.ID,
		ReceiverID:     receiverID,
		Amount:         req.Amount,
		Message:        req.Message,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		respondError(c, h.logger, "send karma", err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.OK(dto.SendResponse{
		TransactionID: dto.FormatID(result.Transaction.ID),
		Transaction:   dto.NewTransactionResponse(result.Transaction),
		Replayed:      result.Replayed,
	}))
}

// Validate handles POST /transactions/validate
func (h *TransactionHandler) Validate(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "validate transfer", domainerr.ErrUnauthorized)
		return
	}

	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receiverID, ok := parseID(req.ReceiverID)
	if !ok {
		respondError(c, h.logger, "validate transfer", fmt.Errorf("%w: invalid receiverId", domainerr.ErrInvalidRequest))
		return
	}

	result, err := h.transactions.ValidateTransaction(c.Request.Context(), member.ID, receiverID, req.Amount)
	if err != nil {
		respondError(c, h.logger, "validate transfer", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(result))
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "list transactions", domainerr.ErrUnauthorized)
		return
	}

	filter, err := parseTransactionFilter(c, member)
	if err != nil {
		respondError(c, h.logger, "list transactions", err)
		return
	}

	page, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "list transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success:    true,
		Data:       dto.NewTransactionList(page.Transactions),
		Pagination: dto.NewPagination(page.Pagination),
	})
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "get transaction", domainerr.ErrUnauthorized)
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, "get transaction", domainerr.ErrTransactionNotFound)
		return
	}

	txn, err := h.ledger.GetTransaction(c.Request.Context(), member.WorkspaceID, id)
	if err != nil {
		respondError(c, h.logger, "get transaction", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewTransactionResponse(txn)))
}

// Leaderboard handles GET /leaderboard
func (h *TransactionHandler) Leaderboard(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "get leaderboard", domainerr.ErrUnauthorized)
		return
	}

	limit, ok := queryInt(c, "limit", defaultLeaderboardLimit)
	if !ok || limit < 1 {
		respondError(c, h.logger, "get leaderboard", fmt.Errorf("%w: limit must be a positive number", domainerr.ErrInvalidRequest))
		return
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.ledger.Leaderboard(c.Request.Context(), member.WorkspaceID, entity.LeaderboardPeriod(c.Query("period")), limit)
	if err != nil {
		respondError(c, h.logger, "get leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewLeaderboard(entries)))
}

// parseTransactionFilter reads the ledger query. Dates are UTC days and both
// ends are inclusive.
func parseTransactionFilter(c *gin.Context, member *entity.Account) (entity.TransactionFilter, error) {
	filter := entity.TransactionFilter{
		WorkspaceID: member.WorkspaceID,
		ProfileID:   member.ID,
		Direction:   entity.Direction(c.Query("type")),
		View:        entity.LedgerView(c.Query("view")),
		Search:      c.Query("search"),
	}

	var ok bool
	if filter.Page, ok = queryInt(c, "page", 1); !ok {
		return filter, fmt.Errorf("%w: page must be a number", domainerr.ErrInvalidRequest)
	}
	if filter.Page > entity.MaxPage {
		return filter, fmt.Errorf("%w: page must be at most %d", domainerr.ErrInvalidRequest, entity.MaxPage)
	}
	if filter.Limit, ok = queryInt(c, "limit", entity.DefaultPageLimit); !ok {
		return filter, fmt.Errorf("%w: limit must be a number", domainerr.ErrInvalidRequest)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(entity.DayLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be YYYY-MM-DD", domainerr.ErrInvalidRequest)
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(entity.DayLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be YYYY-MM-DD", domainerr.ErrInvalidRequest)
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	return filter, nil
}
