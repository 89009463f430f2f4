package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/journalkeeper/api/internal/application"
	"github.com/journalkeeper/api/internal/container"
	handlers "github.com/journalkeeper/api/internal/interface/http"
	"github.com/journalkeeper/api/internal/interface/middleware"
)

// EntryModule wires the Entry resource routes; every one of them requires
// Basic authentication.

type EntryModule struct {
	Handler *handlers.EntryHandler
	Auth    *application.AuthService
}

func NewEntry(h *handlers.EntryHandler, auth *application.AuthService) *EntryModule {
	return &EntryModule{Handler: h, Auth: auth}
}

func (m *EntryModule) Register(rg *gin.RouterGroup) {
	entries := rg.Group("/entries")
	entries.Use(middleware.RequireBasicAuth(m.Auth, container.GetLogger()))
	entries.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUser()))
	{
		entries.POST("", middleware.RequireJSON(), m.Handler.Create)
		entries.GET("", m.Handler.List)
		entries.GET("/search", m.Handler.Search)
		entries.GET("/:id", m.Handler.Get)
		entries.PUT("/:id", middleware.RequireJSON(), m.Handler.Update)
		entries.DELETE("/:id", m.Handler.Delete)
	}
}
