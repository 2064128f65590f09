package handler

import (
	"context"
	"net/http"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const pingTimeout = 800 * time.Millisecond

type HealthHandler struct{ db *gorm.DB }

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	start := time.Now()
	err := func() error {
		sqlDB, err := h.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}()
	metrics.ObserveDBPing(time.Since(start))
	if err != nil {
		logger.Warn("health.db_unreachable", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}
