package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-service/common/logger"
)

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health handles GET /health. It reports 503 when MongoDB does not answer a
// ping within two seconds.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.db.Ping(ctx); err != nil {
		logger.Error(c, "Health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
