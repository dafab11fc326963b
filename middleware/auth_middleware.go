package middleware

import (
	"errors"
	"net/http"

	"taskhive/taskhive/services"
	"taskhive/taskhive/utils/token"

	"github.com/gin-gonic/gin"
)

// Context key under which the authenticated user is stored for handlers.
const CurrentUserKey = "currentUser"

// AuthMiddleware is the request authenticator guarding every task endpoint.
// It extracts the bearer token, verifies signature and expiry, and resolves
// the token subject to a stored user. A token whose subject no longer exists
// (user deleted after issuance) is rejected like any other invalid token.
func AuthMiddleware(authService services.AuthServiceInterface, userService services.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := userService.GetUserById(claims.UserID.String())
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(CurrentUserKey, user)

		c.Next()
	}
}
