package api

import (
	"trading_dashboard/internal/domain"     // Importing domain models
	"trading_dashboard/internal/middleware" // Current user accessor

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const loginErrorMsg = "Error trying to locate the page, try logging in."

// loadAccount reads the user row with its Stat and owned lists. The read
// fails as a whole when the user or its Stat row is missing: partial data
// is never rendered.
func loadAccount(db *gorm.DB, userID uint) (domain.User, bool) {
	var user domain.User
	err := db.Preload("Stat").
		Preload("Withdrawals").
		Preload("Notifications").
		First(&user, userID).Error
	if err != nil || user.Stat.ID == 0 {
		return domain.User{}, false
	}
	return user, true
}

// accountView flattens the aggregate into the template data shape.
// Lists keep their stored order.
func accountView(user domain.User, title string) gin.H {
	return gin.H{
		"title":              title,
		"name":               displayName(user.Name),
		"email":              user.Email,
		"balance":            user.Stat.Balance,
		"earning":            user.Stat.Earning,
		"deposit":            user.Stat.Deposit,
		"withdraws":          user.Stat.Withdraws,
		"latestTransactions": user.Withdrawals,
		"notifications":      user.Notifications,
	}
}

// DashboardHandler renders the main dashboard: Stat figures plus the
// withdrawal and notification lists.
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)
		user, ok := loadAccount(db, current.ID)
		if !ok {
			logrus.WithFields(logrus.Fields{"user_id": current.ID}).Error("Dashboard read failed: user or stat missing")
			flashAndRedirect(c, rdb, "error", loginErrorMsg, "/user/login")
			return
		}
		render(c, rdb, "dashboard.html", accountView(user, "Dashboard"))
	}
}

// WalletHandler renders the wallet page with the same aggregate as the dashboard
func WalletHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)
		user, ok := loadAccount(db, current.ID)
		if !ok {
			logrus.WithFields(logrus.Fields{"user_id": current.ID}).Error("Wallet read failed: user or stat missing")
			flashAndRedirect(c, rdb, "error", loginErrorMsg, "/user/login")
			return
		}
		render(c, rdb, "wallet.html", accountView(user, "Wallet"))
	}
}

// MarketsHandler renders the markets page. The Stat row must still exist,
// but its figures are not part of this view.
func MarketsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)
		var user domain.User
		err := db.Preload("Stat").Preload("Notifications").First(&user, current.ID).Error
		if err != nil || user.Stat.ID == 0 {
			logrus.WithFields(logrus.Fields{"user_id": current.ID}).Error("Markets read failed: user or stat missing")
			flashAndRedirect(c, rdb, "error", loginErrorMsg, "/user/login")
			return
		}
		render(c, rdb, "markets.html", gin.H{
			"title":         "Markets",
			"name":          displayName(user.Name),
			"email":         user.Email,
			"notifications": user.Notifications,
		})
	}
}

// WithdrawPageHandler renders the withdrawal form
func WithdrawPageHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)
		render(c, rdb, "withdraw.html", gin.H{
			"title": "Withdraw",
			"name":  displayName(current.Name),
			"email": current.Email,
		})
	}
}

// DepositPageHandler renders the deposit form
func DepositPageHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)
		render(c, rdb, "deposit.html", gin.H{
			"title": "Deposit",
			"name":  displayName(current.Name),
			"email": current.Email,
		})
	}
}
