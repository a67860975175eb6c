package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcart/cartscout/models"
)

// Comparer is the slice of the orchestrator the handlers need.
type Comparer interface {
	Run(ctx context.Context, shoppingList []models.ShoppingListItem) ([]models.ItemResult, error)
	RunSingle(ctx context.Context, searchTerm string) (map[string][]models.ProductCandidate, error)
}

// Compare returns a handler for POST /api/v1/compare.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Orchestrator.Run → one ranked ItemResult per shopping-list item.
//  3. Fill Timing, return 200.
func Compare(orc Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CompareResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		results, err := orc.Run(c.Request.Context(), req.ShoppingList)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		c.JSON(http.StatusOK, models.CompareResponse{
			Success: true,
			Results: results,
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			},
		})
	}
}

// LegacyScrape returns a handler for the original POST /scrape route.
// The response is a flat object keyed by retailer identifier, exactly
// as the first frontend revision expects — no envelope, no ranking.
func LegacyScrape(orc Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LegacySearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search term"})
			return
		}

		stores, err := orc.RunSingle(c.Request.Context(), req.SearchTerm)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		c.JSON(http.StatusOK, stores)
	}
}

// respondError maps a CompareError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	compareErr, ok := err.(*models.CompareError)
	if !ok {
		compareErr = models.NewCompareError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(compareErr), models.CompareResponse{
		Success: false,
		Error:   compareErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CompareError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeCompareTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
