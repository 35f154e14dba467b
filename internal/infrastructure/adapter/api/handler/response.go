package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its status and envelope. Server side
// failures are logged and answered without internal detail.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := domainerr.HTTPStatus(err)
	code := domainerr.ErrorCode(err)
	_ = c.Error(err)

	if messages := domainerr.ValidationMessages(err); len(messages) > 0 {
		c.JSON(status, dto.Fail(code, "Validation failed", messages...))
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+operation, map[string]any{
			"error":      err.Error(),
			"request_id": coreport.RequestID(c.Request.Context()),
		})
		message := "Internal server error"
		if status == http.StatusServiceUnavailable {
			message = "Service temporarily unavailable"
		}
		c.JSON(status, dto.Fail(code, message))
		return
	}

	c.JSON(status, dto.Fail(code, clientMessage(err)))
}

func clientMessage(err error) string {
	switch {
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		return "Transaction not found"
	case errors.Is(err, domainerr.ErrAccountNotFound):
		return "Member not found"
	case errors.Is(err, domainerr.ErrWorkspaceNotFound):
		return "Workspace not found"
	case domainerr.IsNotFoundError(err):
		return "Resource not found"
	case errors.Is(err, domainerr.ErrForbidden):
		return "You are not allowed to perform this action"
	case errors.Is(err, domainerr.ErrAlreadyReset):
		return "Workspace already reset this month"
	case domainerr.IsConflictError(err):
		return "The request conflicted with a concurrent change, please retry"
	default:
		return err.Error()
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Fail(
		domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		"Invalid request format",
		dto.ValidationMessages(err)...,
	))
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
