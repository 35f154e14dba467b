package handler

import (
	"fmt"
	"net/http"

	"github.com/claimsy/karma/internal/domain/entity"
	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance and allowance reset requests
type BalanceHandler struct {
	members    usecase.MemberUseCase
	dailyLimit usecase.DailyLimitUseCase
	allowance  usecase.AllowanceUseCase
	cronAuth   *middleware.CronAuthorizer
	logger     coreport.Logger
}

// NewBalanceHandler creates a new balance handler instance
func NewBalanceHandler(
	members usecase.MemberUseCase,
	dailyLimit usecase.DailyLimitUseCase,
	allowance usecase.AllowanceUseCase,
	cronAuth *middleware.CronAuthorizer,
	logger coreport.Logger,
) *BalanceHandler {
	return &BalanceHandler{
		members:    members,
		dailyLimit: dailyLimit,
		allowance:  allowance,
		cronAuth:   cronAuth,
		logger:     logger,
	}
}

// GetBalance handles GET /balance
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "get balance", domainerr.ErrUnauthorized)
		return
	}

	balance, err := h.members.GetBalance(c.Request.Context(), member.ID)
	if err != nil {
		respondError(c, h.logger, "get balance", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewBalanceResponse(balance)))
}

// GetDailyLimit handles GET /balance/daily-limit
func (h *BalanceHandler) GetDailyLimit(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "get daily limit", domainerr.ErrUnauthorized)
		return
	}

	info, err := h.dailyLimit.GetDailyLimitInfo(c.Request.Context(), member.ID)
	if err != nil {
		respondError(c, h.logger, "get daily limit", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(info))
}

// Reset handles POST /balance/reset
func (h *BalanceHandler) Reset(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "reset allowance", domainerr.ErrUnauthorized)
		return
	}

	var req dto.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	var results []entity.ResetResult

	switch req.Type {
	case dto.ResetTypeWorkspace:
		workspaceID := member.WorkspaceID
		if req.WorkspaceID != "" {
			if workspaceID, ok = parseID(req.WorkspaceID); !ok {
				respondError(c, h.logger, "reset allowance", fmt.Errorf("%w: invalid workspaceId", domainerr.ErrInvalidRequest))
				return
			}
		}
		result, err := h.allowance.ManualWorkspaceReset(ctx, workspaceID, member.ID)
		if err != nil {
			respondError(c, h.logger, "reset allowance", err)
			return
		}
		results = []entity.ResetResult{*result}

	case dto.ResetTypeAll:
		if !member.IsSuperAdmin() {
			respondError(c, h.logger, "reset allowance", domainerr.ErrForbidden)
			return
		}
		var err error
		if results, err = h.allowance.ResetAllWorkspacesAllowances(ctx, entity.TriggerAll); err != nil {
			respondError(c, h.logger, "reset allowance", err)
			return
		}

	case dto.ResetTypeCron:
		if !h.cronAuth.Authorized(c.Request) {
			respondError(c, h.logger, "reset allowance", domainerr.ErrUnauthorized)
			return
		}
		var err error
		if results, err = h.allowance.ResetAllWorkspacesAllowances(ctx, entity.TriggerCron); err != nil {
			respondError(c, h.logger, "reset allowance", err)
			return
		}
	}

	h.logger.Info("Allowance reset requested", map[string]any{
		"type":       req.Type,
		"profile_id": member.ID,
		"workspaces": len(results),
	})
	c.JSON(http.StatusOK, dto.OK(dto.ResetResponse{Results: results}))
}

// ResetHistory handles GET /balance/reset
func (h *BalanceHandler) ResetHistory(c *gin.Context) {
	member, ok := middleware.CurrentMember(c)
	if !ok {
		respondError(c, h.logger, "get reset history", domainerr.ErrUnauthorized)
		return
	}

	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		respondError(c, h.logger, "get reset history", fmt.Errorf("%w: limit must be a number", domainerr.ErrInvalidRequest))
		return
	}

	view, err := h.allowance.GetResetHistory(c.Request.Context(), member.WorkspaceID, limit)
	if err != nil {
		respondError(c, h.logger, "get reset history", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewResetHistoryResponse(view)))
}
