package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes exposes a root endpoint usable as a liveness probe.
func RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Task management API is running")
	})
}
