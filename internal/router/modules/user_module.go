package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/journalkeeper/api/internal/application"
	"github.com/journalkeeper/api/internal/container"
	handlers "github.com/journalkeeper/api/internal/interface/http"
	"github.com/journalkeeper/api/internal/interface/middleware"
)

// UserModule wires the User resource routes.
// Public: POST /api/users, GET /api/users, GET /api/users/:id
// Basic auth: PUT /api/users/:id, DELETE /api/users/:id

type UserModule struct {
	Handler *handlers.UserHandler
	Auth    *application.AuthService
}

func NewUser(h *handlers.UserHandler, auth *application.AuthService) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIP())

	rg.POST("/users", registerLimiter, middleware.RequireJSON(), m.Handler.Create)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:id", m.Handler.Get)

	authed := rg.Group("/users")
	authed.Use(middleware.RequireBasicAuth(m.Auth, container.GetLogger()))
	authed.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser()))
	{
		authed.PUT("/:id", middleware.RequireJSON(), m.Handler.Update)
		authed.DELETE("/:id", m.Handler.Delete)
	}
}
