package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/journalkeeper/api/pkg/apperrors"
)

// Error writes the API's uniform failure body: {"error": "<message>"}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AbortError writes the failure body and stops the handler chain; used by
// middleware so downstream handlers never run after a rejection.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// FromError maps an error onto the wire. Typed request failures keep their
// contracted status and message; anything else is an opaque 500.
func FromError(c *gin.Context, err error) {
	var apiErr *apperrors.Error
	if errors.As(err, &apiErr) {
		Error(c, apiErr.Status, apiErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error")
}
