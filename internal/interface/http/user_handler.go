package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/application"
	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/interface/middleware"
	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// publicUser is the only shape a User ever takes on the wire: password, name
// and email are never serialized.
func publicUser(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	var apiErr *apperrors.Error
	if !errors.As(err, &apiErr) {
		h.Logger.WithError(err).Error("user request failed")
	}
	response.FromError(c, err)
}

// idParam parses the :id path segment. The raw segment is reported back in
// not-found messages even when it isn't numeric.
func idParam(c *gin.Context) (int64, string, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, raw, err == nil
}

func (h *UserHandler) Create(c *gin.Context) {
	var p application.UserPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperrors.MalformedBody())
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/users/%d", u.ID))
	c.JSON(http.StatusCreated, publicUser(u))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, raw, ok := idParam(c)
	if !ok {
		h.fail(c, apperrors.UserNotFound(raw))
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicUser(u))
}

// Update allows a user to edit only their own account; any other target id
// is forbidden regardless of whether it exists.
func (h *UserHandler) Update(c *gin.Context) {
	acting := middleware.CurrentUser(c)
	id, _, ok := idParam(c)
	if !ok || acting == nil || acting.ID != id {
		e := apperrors.ForbiddenUser()
		response.Error(c, e.Status, e.Message)
		return
	}
	var p application.UserPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperrors.MalformedBody())
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicUser(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	acting := middleware.CurrentUser(c)
	id, _, ok := idParam(c)
	if !ok || acting == nil || acting.ID != id {
		e := apperrors.ForbiddenUser()
		response.Error(c, e.Status, e.Message)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
