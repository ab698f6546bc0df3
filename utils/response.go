package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CategoryForbidden  = "Forbidden"
	CategoryNotFound   = "Not Found"
	CategoryBadRequest = "Bad Request"
	CategoryConflict   = "Conflict"
	CategoryInternal   = "Internal Server Error"
)

// ErrorBody builds {"error": {category: message}}.
func ErrorBody(category, message string) gin.H {
	return gin.H{"error": gin.H{category: message}}
}

// SuccessBody builds {"response": {"success": message}}.
func SuccessBody(message string) gin.H {
	return gin.H{"response": gin.H{"success": message}}
}

func AbortWithError(c *gin.Context, status int, category, message string) {
	c.AbortWithStatusJSON(status, ErrorBody(category, message))
}

func RespondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessBody(message))
}
