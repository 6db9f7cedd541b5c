package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// appCtxKey is the Gin context key used to store the authenticated app ID.
const appCtxKey = "app_id"

// KeyValidator resolves an API key to the application that owns it.
type KeyValidator interface {
	ValidateKey(ctx context.Context, apiKey string) (string, error)
}

// APIKeyMiddleware gates the ingestion path: it extracts the bearer token,
// validates it against the key store, and attaches the resolved app ID to the
// request context. It never mutates key state.
func APIKeyMiddleware(ks KeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing api key"})
			return
		}

		appID, err := ks.ValidateKey(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrInvalidKey) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth backend unavailable"})
			return
		}

		c.Set(appCtxKey, appID)
		c.Next()
	}
}

// extractToken reads `Authorization: Bearer <key>`, falling back to the
// X-API-Key header.
func extractToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(c.GetHeader("X-API-Key"))
}

// AppID returns the authenticated application ID from the request context.
func AppID(c *gin.Context) string {
	v, _ := c.Get(appCtxKey)
	s, _ := v.(string)
	return s
}
