package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "taskmanager/internal/adapter/http/helper"
	"taskmanager/internal/core/model/response"
	"taskmanager/pkg/logger"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	log     *logger.Logger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		log:     log,
		timeout: 2 * time.Second,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Ctx(ctx).Warn("Health check failed", zap.Error(err))

		SendError(c, http.StatusServiceUnavailable, CodeUnavailable, []response.ValidationError{
			{Field: "database", Message: "Database unavailable"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
