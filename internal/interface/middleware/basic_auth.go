package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/application"
	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/response"
)

const currentUserKey = "currentUser"

// RequireBasicAuth is the access-control gate for credentialed endpoints.
// An absent or undecodable Authorization header and a rejected credential
// pair both abort with 401, with distinct messages. On success the verified
// user is stored in the gin context for ownership checks downstream.
func RequireBasicAuth(auth *application.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			e := apperrors.AuthenticationRequired()
			response.AbortError(c, e.Status, e.Message)
			return
		}

		u, err := auth.Verify(c.Request.Context(), email, password)
		if err != nil {
			if errors.Is(err, application.ErrNoSuchIdentity) || errors.Is(err, application.ErrWrongSecret) {
				e := apperrors.IncorrectCredentials()
				response.AbortError(c, e.Status, e.Message)
				return
			}
			logger.WithError(err).Error("credential verification failed")
			response.AbortError(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the account set by RequireBasicAuth, or nil on
// unguarded routes.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
