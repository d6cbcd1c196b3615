package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// WebSocketAuthMiddleware decodes the ?token= query parameter when present.
// The live feed is read-only broadcast data, so anonymous floor displays are
// allowed through; a token that is supplied but invalid is still rejected.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
