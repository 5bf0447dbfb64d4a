package api

import (
	"context"
	"net/http"
	"time"

	"booking-concierge/internal/pkg/clock"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const readyCheckTimeout = 2 * time.Second

type HealthHandler struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewHealthHandler(pool *pgxpool.Pool, clk clock.Clock) *HealthHandler {
	return &HealthHandler{pool: pool, clock: clk}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.clock.Now().Format(time.RFC3339),
	})
}

// Ready also verifies the database connection.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": h.clock.Now().Format(time.RFC3339),
	})
}
