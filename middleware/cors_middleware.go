package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
)

// CORSMiddleware adds the required headers to allow cross-origin requests
func CORSMiddleware(allowedOrigins string) gin.HandlerFunc {

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	corsConfig.AllowWildcard = true
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, []string{
		"Accept",
		"Authorization",
		"Accept-Encoding",
		"X-Requested-With",
	}...)

	return cors.New(corsConfig)
}
