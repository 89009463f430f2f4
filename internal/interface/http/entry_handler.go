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
	"github.com/journalkeeper/api/pkg/timecodec"
)

type EntryHandler struct {
	Svc    *application.EntryService
	Logger *logrus.Logger
}

func NewEntryHandler(svc *application.EntryService, logger *logrus.Logger) *EntryHandler {
	return &EntryHandler{Svc: svc, Logger: logger}
}

func publicEntry(e *entity.Entry) gin.H {
	return gin.H{
		"id":                 e.ID,
		"timestampInUTC":     timecodec.FormatUTC(e.TimestampUTC),
		"utcZoneOfTimestamp": e.UTCZone,
		"content":            e.Content,
		"userId":             e.UserID,
	}
}

func (h *EntryHandler) fail(c *gin.Context, err error) {
	var apiErr *apperrors.Error
	if !errors.As(err, &apiErr) {
		h.Logger.WithError(err).Error("entry request failed")
	}
	response.FromError(c, err)
}

func (h *EntryHandler) Create(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	var p application.EntryPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperrors.MalformedBody())
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), p, owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/entries/%d", e.ID))
	c.JSON(http.StatusCreated, publicEntry(e))
}

func (h *EntryHandler) List(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	entries, err := h.Svc.List(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, publicEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *EntryHandler) Get(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, raw, ok := idParam(c)
	if !ok {
		h.fail(c, apperrors.EntryNotFound(raw))
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id, owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicEntry(e))
}

func (h *EntryHandler) Update(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, raw, ok := idParam(c)
	if !ok {
		h.fail(c, apperrors.EntryNotFound(raw))
		return
	}
	var p application.EntryPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperrors.MalformedBody())
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), id, p, owner)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicEntry(e))
}

func (h *EntryHandler) Delete(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, raw, ok := idParam(c)
	if !ok {
		h.fail(c, apperrors.EntryNotFound(raw))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, owner); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search returns the caller's entries whose content matches ?q=.
func (h *EntryHandler) Search(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	size := 0
	if v := c.Query("size"); v != "" {
		size, _ = strconv.Atoi(v)
	}
	entries, err := h.Svc.Search(c.Request.Context(), c.Query("q"), owner, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, publicEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
