package middleware

import (
	"net/http" // HTTP status codes

	"trading_dashboard/internal/domain" // Importing domain models
	"trading_dashboard/internal/utils"  // Session token helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"gorm.io/gorm"                 // GORM ORM library
)

const currentUserKey = "currentUser"

// SessionAuth validates the session cookie and loads the current user.
// Unauthenticated requests are redirected to the login page; the workflow
// behind the gate never runs.
func SessionAuth(db *gorm.DB, rdb *redis.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookie)
		if err != nil || token == "" {
			_ = utils.SetFlash(c.Request.Context(), rdb, c, "error", "Please log in to view this resource")
			c.Redirect(http.StatusFound, "/user/login")
			c.Abort()
			return
		}
		claims, err := utils.ParseJWT(token, secret)
		if err != nil {
			// Expired or tampered token: drop the cookie and start over
			c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
			_ = utils.SetFlash(c.Request.Context(), rdb, c, "error", "Please log in to view this resource")
			c.Redirect(http.StatusFound, "/user/login")
			c.Abort()
			return
		}
		var user domain.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
			_ = utils.SetFlash(c.Request.Context(), rdb, c, "error", "Please log in to view this resource")
			c.Redirect(http.StatusFound, "/user/login")
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by SessionAuth.
// The second return is false on routes outside the session gate.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
