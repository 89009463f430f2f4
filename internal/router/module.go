package router

import "github.com/gin-gonic/gin"

// Module is a routable feature slice of the API (users, entries). Each module
// attaches its own handlers and route-level middleware under the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
