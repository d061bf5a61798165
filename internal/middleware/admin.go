package middleware

import (
	"net/http"

	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware allows only administrators through. It must run after
// AuthMiddleware so "userID" is already set.
func AdminMiddleware(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDRaw, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		userID := userIDRaw.(int64)

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
