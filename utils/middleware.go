package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	APIKeyParam      = "api-key"
	forbiddenMessage = "Sorry, that's not allowed. Make sure you have the correct api_key."
)

// APIKeyMiddleware rejects requests whose api-key query parameter differs from secret.
// It runs before the handler so a rejected request never reaches the store.
func APIKeyMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := c.GetQuery(APIKeyParam)
		if !ok || key != secret {
			AbortWithError(c, http.StatusForbidden, CategoryForbidden, forbiddenMessage)
			return
		}
		c.Next()
	}
}
