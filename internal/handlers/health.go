package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Health check database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "Database unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Songbook is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
