package api

import (
	"time" // Injected clock

	"trading_dashboard/internal/config"     // Application configuration
	"trading_dashboard/internal/middleware" // Session and admin gates

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRoutes wires every route onto the engine. Every dashboard route
// sits behind the session gate; admin routes additionally require the
// admin role on each request.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, mail Mailer, cfg *config.Config, now func() time.Time) {
	// Auth routes
	r.GET("/user/register", RegisterPageHandler(rdb))
	r.POST("/user/register", RegisterHandler(db, rdb))
	r.GET("/user/login", LoginPageHandler(rdb))
	r.POST("/user/login", LoginHandler(db, rdb, cfg.JWTSecret))
	r.GET("/user/logout", LogoutHandler(rdb))

	// Dashboard routes (session gate)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.SessionAuth(db, rdb, cfg.JWTSecret))
	dashboard.GET("", DashboardHandler(db, rdb))
	dashboard.GET("/wallet", WalletHandler(db, rdb))
	dashboard.GET("/markets", MarketsHandler(db, rdb))
	dashboard.GET("/withdraw", WithdrawPageHandler(rdb))
	dashboard.POST("/withdraw", WithdrawHandler(db, rdb, mail, cfg, now))
	dashboard.GET("/deposit", DepositPageHandler(rdb))
	dashboard.POST("/deposit", DepositHandler(db, rdb, now))

	// Admin routes (session gate + role gate)
	admin := r.Group("/admin")
	admin.Use(middleware.SessionAuth(db, rdb, cfg.JWTSecret), middleware.AdminOnly(rdb))
	admin.GET("/users", ListUsersHandler(db, rdb))
	admin.POST("/users/:user_id/delete", DeleteUserHandler(db, rdb))
	admin.GET("/update-person", UpdatePersonPageHandler(rdb))
	admin.POST("/update-person", UpdateUserStatHandler(db, rdb))
	admin.GET("/send-notification", SendNotificationPageHandler(db, rdb))
	admin.POST("/send-notification", SendNotificationHandler(db, rdb, mail, cfg, now))
}
