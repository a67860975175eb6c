package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smartcart/cartscout/api/handler"
	"github.com/smartcart/cartscout/api/middleware"
	"github.com/smartcart/cartscout/browser"
	"github.com/smartcart/cartscout/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → RequestID → CORS
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(orc handler.Comparer, mgr *browser.Manager, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-API-Key", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(mgr.Stats, startTime))

	// One rate limiter shared by every protected route, so a client
	// draws from a single token bucket no matter which endpoint it hits.
	rateLimit := middleware.RateLimit(cfg.RateLimit)
	var auth gin.HandlerFunc
	if cfg.Auth.Enabled {
		auth = middleware.Auth(cfg.Auth.APIKeys)
	}

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if auth != nil {
		protected.Use(auth)
	}
	protected.Use(rateLimit)

	// Compare a full shopping list, ranked per item.
	protected.POST("/compare", handler.Compare(orc))

	// Legacy single-term route, wire-compatible with the first revision.
	legacy := r.Group("")
	if auth != nil {
		legacy.Use(auth)
	}
	legacy.Use(rateLimit)
	legacy.POST("/scrape", handler.LegacyScrape(orc))

	return r
}
