package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riyazmd/unified-event-analytics/internal/auth"
	"github.com/riyazmd/unified-event-analytics/internal/cache"
	"github.com/riyazmd/unified-event-analytics/internal/config"
	"github.com/riyazmd/unified-event-analytics/internal/handlers"
	"github.com/riyazmd/unified-event-analytics/internal/ratelimit"
	"github.com/riyazmd/unified-event-analytics/internal/service"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// NewRouter wires public endpoints and the authenticated ingestion API.
// Public: /health, /ready, /api/auth/*, /api/analytics/*
// Authenticated (API key): /api/events/*
func NewRouter(cfg config.Config, st *store.PostgresStore, summaryCache cache.Cache, limiter *ratelimit.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	if limiter != nil {
		r.Use(ratelimit.Middleware(limiter))
	}

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	ingestor := service.NewIngestor(st)
	summarizer := service.NewSummarizer(st, summaryCache, cfg.CacheTTL)

	authGroup := r.Group("/api/auth")
	handlers.RegisterAuthRoutes(authGroup, st)

	eventsGroup := r.Group("/api/events")
	eventsGroup.Use(auth.APIKeyMiddleware(st))
	handlers.RegisterEventRoutes(eventsGroup, ingestor)

	analyticsGroup := r.Group("/api/analytics")
	handlers.RegisterAnalyticsRoutes(analyticsGroup, summarizer, st)

	return r
}
