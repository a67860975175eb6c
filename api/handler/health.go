package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcart/cartscout/models"
)

// Health returns a handler for GET /api/v1/health. stats is queried per
// request so the response reflects the browser's current state.
func Health(stats func() models.BrowserStats, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		browser := stats()

		status := "healthy"
		if !browser.Connected {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Browser: browser,
			Version: "0.1.0",
		})
	}
}
