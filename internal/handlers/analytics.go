package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riyazmd/unified-event-analytics/internal/models"
	"github.com/riyazmd/unified-event-analytics/internal/service"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// UserCounter is the per-user aggregation surface used by /user-stats.
type UserCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// RegisterAnalyticsRoutes registers the query-path endpoints.
//
// GET /event-summary ?event=&startDate=&endDate= → 200/400/404
// GET /user-stats    ?userId=                    → 200/400/404
func RegisterAnalyticsRoutes(r gin.IRoutes, sum *service.Summarizer, users UserCounter) {
	r.GET("/event-summary", func(c *gin.Context) {
		event := strings.TrimSpace(c.Query("event"))
		startDate := strings.TrimSpace(c.Query("startDate"))
		endDate := strings.TrimSpace(c.Query("endDate"))

		if event == "" || startDate == "" || endDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event, startDate, endDate are required"})
			return
		}

		summary, err := sum.Summary(c.Request.Context(), event, startDate, endDate)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidRange):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "event type not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			}
			return
		}

		c.JSON(http.StatusOK, summary)
	})

	r.GET("/user-stats", func(c *gin.Context) {
		userID := strings.TrimSpace(c.Query("userId"))
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
			return
		}

		total, err := users.CountByUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found or no events recorded"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		c.JSON(http.StatusOK, models.UserStats{UserID: userID, TotalEvents: total})
	})
}
