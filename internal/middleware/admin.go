package middleware

import (
	"net/http" // HTTP status codes

	"trading_dashboard/internal/utils" // Flash helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
)

// AdminOnly gates the admin workflow behind an explicit role check on
// every request. It runs after SessionAuth, which already re-read the
// user row, so the role seen here is current.
func AdminOnly(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != "admin" {
			_ = utils.SetFlash(c.Request.Context(), rdb, c, "error", "Admin access required")
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
