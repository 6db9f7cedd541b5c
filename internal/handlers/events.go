package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riyazmd/unified-event-analytics/internal/auth"
	"github.com/riyazmd/unified-event-analytics/internal/models"
	"github.com/riyazmd/unified-event-analytics/internal/service"
)

// RegisterEventRoutes registers the ingestion-path endpoint. The route group
// must carry the API key middleware; the handler only trusts the app ID it
// resolved.
//
// POST /collect → 200 ack, 400 validation, 401 unauthenticated
func RegisterEventRoutes(r gin.IRoutes, ing *service.Ingestor) {
	r.POST("/collect", func(c *gin.Context) {
		appID := auth.AppID(c)
		if appID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.CollectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		eventID, err := ing.Collect(c.Request.Context(), appID, req)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "missing": verr.Missing})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		c.JSON(http.StatusOK, models.CollectResponse{
			Message: "Event collected successfully",
			EventID: eventID,
		})
	})
}
