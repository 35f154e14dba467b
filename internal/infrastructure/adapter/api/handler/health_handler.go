package handler

import (
	"context"
	"net/http"

	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/claimsy/karma/internal/infrastructure/adapter/database"
	"github.com/gin-gonic/gin"
)

// DatabaseStatus reports whether the database answers and how its pool is doing
type DatabaseStatus interface {
	Ping(ctx context.Context) error
	PoolMetrics() database.ConnectionPoolMetrics
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	db     DatabaseStatus
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db DatabaseStatus, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.Fail(domainerr.ErrorCode(domainerr.ErrDatabaseConnection), "Database unavailable"))
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{
		"status": "ok",
		"pool":   h.db.PoolMetrics(),
	}))
}
