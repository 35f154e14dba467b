package handler

import (
	"net/http"

	"github.com/claimsy/karma/internal/domain/entity"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CronHandler serves scheduled invocations. Authentication is done by middleware.CronAuth.
type CronHandler struct {
	allowance usecase.AllowanceUseCase
	logger    coreport.Logger
}

// NewCronHandler creates a new cron handler instance
func NewCronHandler(allowance usecase.AllowanceUseCase, logger coreport.Logger) *CronHandler {
	return &CronHandler{allowance: allowance, logger: logger}
}

// MonthlyReset handles POST /cron/monthly-reset
func (h *CronHandler) MonthlyReset(c *gin.Context) {
	results, err := h.allowance.ResetAllWorkspacesAllowances(c.Request.Context(), entity.TriggerCron)
	if err != nil {
		respondError(c, h.logger, "run monthly reset", err)
		return
	}

	summary := entity.Summarize(results)
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    dto.CronResetResponse{Summary: summary, Results: results},
		Message: "Monthly reset finished",
	})
}
