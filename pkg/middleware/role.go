package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole lets a request through only when the authenticated user
// carries one of the allowed roles. Must run after the JWT middleware
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if _, ok := allowed[c.GetString("userRole")]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Forbidden",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
