package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area of the API. Each module attaches
// its own routes, including per-route middleware such as auth and rate
// limits, to the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
