package api_test

import (
	"net/http"

	"parking-core/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const token = "bearer-token"

// fakeAuth stands in for AuthMiddleware.RequireAuth.
func fakeAuth(callerID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", callerID)
		c.Set("user_role", role)
		c.Next()
	}
}
