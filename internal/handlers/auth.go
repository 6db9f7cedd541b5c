package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riyazmd/unified-event-analytics/internal/models"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// KeyStore is the key-management surface used by the auth endpoints.
type KeyStore interface {
	CreateKey(ctx context.Context, appID string) (string, error)
	LookupKey(ctx context.Context, appID string) (string, error)
	RevokeKey(ctx context.Context, appID string) error
}

// RegisterAuthRoutes registers key management endpoints.
//
// POST /register  {app_id} → 201 {app_id, api_key}, 409 on duplicate
// GET  /api-key   ?appId=  → 200 {apiKey}, 404 unknown
// POST /revoke    {app_id} → 200, 404 unknown
func RegisterAuthRoutes(r gin.IRoutes, ks KeyStore) {
	r.POST("/register", func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		appID := strings.TrimSpace(req.AppID)
		if appID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "app_id required"})
			return
		}

		apiKey, err := ks.CreateKey(c.Request.Context(), appID)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateApp) {
				c.JSON(http.StatusConflict, gin.H{"error": "application already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "key issuance failed"})
			return
		}

		c.JSON(http.StatusCreated, models.RegisterResponse{AppID: appID, APIKey: apiKey})
	})

	r.GET("/api-key", func(c *gin.Context) {
		appID := strings.TrimSpace(c.Query("appId"))
		if appID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "appId required"})
			return
		}

		apiKey, err := ks.LookupKey(c.Request.Context(), appID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "key lookup failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"apiKey": apiKey})
	})

	r.POST("/revoke", func(c *gin.Context) {
		var req models.RevokeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		appID := strings.TrimSpace(req.AppID)
		if appID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "app_id required"})
			return
		}

		if err := ks.RevokeKey(c.Request.Context(), appID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "revoke failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "API key revoked successfully"})
	})
}
