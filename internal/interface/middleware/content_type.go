package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/response"
)

// RequireJSON rejects body-carrying requests whose declared media type is not
// application/json before the handler ever parses them.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != "application/json" {
			e := apperrors.UnsupportedMediaType()
			response.AbortError(c, e.Status, e.Message)
			return
		}
		c.Next()
	}
}
