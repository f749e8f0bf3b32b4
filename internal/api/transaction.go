package api

import (
	"fmt"  // Alert email body
	"time" // Injected clock

	"trading_dashboard/internal/config"     // SMTP targets
	"trading_dashboard/internal/domain"     // Importing domain models
	"trading_dashboard/internal/forms"      // Validation rule tables
	"trading_dashboard/internal/middleware" // Current user accessor
	"trading_dashboard/internal/utils"      // Calendar date helper

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// WithdrawHandler records a withdrawal request and alerts the operations
// mailbox. The row is written before the coin name is inspected, so a
// "default" placeholder coin still leaves a pending request behind; that
// matches how the workflow has always behaved and operators rely on seeing
// those rows. The alert email is awaited before redirecting; a delivery
// failure becomes an error flash but the committed row stays.
func WithdrawHandler(db *gorm.DB, rdb *redis.Client, mail Mailer, cfg *config.Config, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.Withdraw); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/dashboard/withdraw")
			return
		}
		current, _ := middleware.CurrentUser(c)
		amount := c.PostForm("amount")
		coinName := c.PostForm("coin_name")
		address := c.PostForm("address")

		withdrawal := domain.Withdrawal{
			UserID: current.ID,
			Amount: amount,
			Status: false, // pending until an operator settles it
			Date:   utils.CalendarDate(now()),
		}
		if err := db.Create(&withdrawal).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": current.ID,
				"amount":  amount,
				"error":   err.Error(),
			}).Error("Failed to record withdrawal request")
			flashAndRedirect(c, rdb, "error", "Failed to submit your withdrawal request", "/dashboard/withdraw")
			return
		}

		if coinName == "default" {
			flashAndRedirect(c, rdb, "error", "Please select a coin name.", "/dashboard/withdraw")
			return
		}

		body := fmt.Sprintf(
			"A user with the email address %q has decided to make a withdrawal of %q to his/her %s address with the address of %s.",
			current.Email, amount, coinName, address,
		)
		if err := mail.SendText(cfg.OpsMailbox, "Client Withdraw Alert", body); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":       current.ID,
				"withdrawal_id": withdrawal.ID,
				"error":         err.Error(),
			}).Error("Withdrawal alert delivery failed")
			flashAndRedirect(c, rdb, "error", "Internal server error.", "/dashboard/withdraw")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       current.ID,
			"withdrawal_id": withdrawal.ID,
			"coin":          coinName,
		}).Info("Withdrawal request recorded")
		flashAndRedirect(c, rdb, "success",
			"Your withdrawal request is processing, we will send you feedback soon.", "/dashboard/withdraw")
	}
}

// DepositHandler records a deposit claim awaiting manual verification.
// No email side effect.
func DepositHandler(db *gorm.DB, rdb *redis.Client, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.Deposit); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/dashboard/deposit")
			return
		}
		current, _ := middleware.CurrentUser(c)
		deposit := domain.Deposit{
			UserID:   current.ID,
			Address:  c.PostForm("address"),
			Amount:   c.PostForm("amount"),
			Date:     utils.CalendarDate(now()),
			Received: false, // pending until our systems verify it
		}
		if err := db.Create(&deposit).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": current.ID,
				"amount":  deposit.Amount,
				"error":   err.Error(),
			}).Error("Failed to record deposit claim")
			flashAndRedirect(c, rdb, "error", "Failed to submit your deposit", "/dashboard/deposit")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    current.ID,
			"deposit_id": deposit.ID,
		}).Info("Deposit claim recorded")
		flashAndRedirect(c, rdb, "success",
			"We will update your assets when our systems has verified the deposit.", "/dashboard/deposit")
	}
}
