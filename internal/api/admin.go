package api

import (
	"fmt"     // Flash message formatting
	"strconv" // String conversion
	"time"    // Injected clock

	"trading_dashboard/internal/config" // Site URL for the email template
	"trading_dashboard/internal/domain" // Importing domain models
	"trading_dashboard/internal/forms"  // Validation rule tables
	"trading_dashboard/internal/mailer" // Notification email template
	"trading_dashboard/internal/utils"  // Calendar date helper

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"github.com/shopspring/decimal" // Decimal-safe account figures
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ListUsersHandler renders the paginated user list with account figures
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1
		pageSize := 20
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		offset := (page - 1) * pageSize
		var total int64
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to count users")
			flashAndRedirect(c, rdb, "error", "Failed to load users", "/dashboard")
			return
		}
		var users []domain.User
		if err := db.Preload("Stat").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to fetch users")
			flashAndRedirect(c, rdb, "error", "Failed to load users", "/dashboard")
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		render(c, rdb, "admin_users.html", gin.H{
			"title":      "Users",
			"users":      users,
			"page":       page,
			"pageSize":   pageSize,
			"total":      total,
			"totalPages": totalPages,
		})
	}
}

// UpdatePersonPageHandler renders the stat update form
func UpdatePersonPageHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, rdb, "admin_update.html", gin.H{"title": "Update Person"})
	}
}

// UpdateUserStatHandler overwrites the target user's Stat row. Running it
// twice with the same payload leaves the same row.
func UpdateUserStatHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.StatUpdate); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/admin/update-person")
			return
		}
		uid, err := strconv.ParseUint(c.PostForm("uid"), 10, 64)
		if err != nil {
			flashAndRedirect(c, rdb, "error", "Enter a user id to update", "/admin/update-person")
			return
		}
		figures := map[string]decimal.Decimal{}
		for _, field := range []string{"balance", "earning", "deposit", "withdraws"} {
			d, err := decimal.NewFromString(c.PostForm(field))
			if err != nil {
				flashAndRedirect(c, rdb, "error", fmt.Sprintf("Invalid %s figure", field), "/admin/update-person")
				return
			}
			figures[field] = d
		}
		res := db.Model(&domain.Stat{}).Where("user_id = ?", uid).Updates(map[string]any{
			"balance":   figures["balance"],
			"earning":   figures["earning"],
			"deposit":   figures["deposit"],
			"withdraws": figures["withdraws"],
		})
		if res.Error != nil {
			logrus.WithFields(logrus.Fields{"user_id": uid, "error": res.Error.Error()}).Error("Failed to update user stat")
			flashAndRedirect(c, rdb, "error", "Failed to update the user", "/admin/update-person")
			return
		}
		if res.RowsAffected == 0 {
			flashAndRedirect(c, rdb, "error", "No user with that id", "/admin/update-person")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": uid}).Info("User stat updated")
		flashAndRedirect(c, rdb, "success", "User updated", "/admin/update-person")
	}
}

// SendNotificationPageHandler renders the notification form with the
// user emails to pick from
func SendNotificationPageHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := db.Select("id", "email").Find(&users).Error; err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to list user emails")
		}
		render(c, rdb, "admin_notify.html", gin.H{
			"title": "Send Notification",
			"users": users,
		})
	}
}

// SendNotificationHandler stores a notification for the target user and
// emails it. The user lookup happens first: an unknown email fails the
// whole operation and writes nothing. Delivery failure after the row is
// committed becomes an error flash; the row stays.
func SendNotificationHandler(db *gorm.DB, rdb *redis.Client, mail Mailer, cfg *config.Config, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.Notification); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/admin/send-notification")
			return
		}
		email := c.PostForm("email")
		title := c.PostForm("title")
		body := c.PostForm("body")

		var user domain.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			flashAndRedirect(c, rdb, "error", "No user with that email address", "/admin/send-notification")
			return
		}
		notification := domain.Notification{
			UserID: user.ID,
			Title:  title,
			Body:   body,
			Date:   utils.CalendarDate(now()),
		}
		if err := db.Create(&notification).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to store notification")
			flashAndRedirect(c, rdb, "error", "Failed to send the notification", "/admin/send-notification")
			return
		}
		html, err := mailer.RenderNotification(title, body, cfg.SiteURL)
		if err == nil {
			err = mail.SendHTML(email, title, html)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":         user.ID,
				"notification_id": notification.ID,
				"error":           err.Error(),
			}).Error("Notification email delivery failed")
			flashAndRedirect(c, rdb, "error", err.Error(), "/admin/send-notification")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":         user.ID,
			"notification_id": notification.ID,
		}).Info("Notification sent")
		flashAndRedirect(c, rdb, "success", "Email and notification sent", "/admin/send-notification")
	}
}

// deleteUserCascade removes a user and every row referencing it in one
// all-or-nothing transaction. A failure at any step leaves all rows in
// place.
func deleteUserCascade(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Deposit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Withdrawal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Stat{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteUserHandler deletes a user and all dependent rows atomically
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			flashAndRedirect(c, rdb, "error", "Invalid user id", "/admin/users")
			return
		}
		var user domain.User
		if err := db.First(&user, id).Error; err != nil {
			flashAndRedirect(c, rdb, "error", "No user with that id", "/admin/users")
			return
		}
		if err := deleteUserCascade(db, user.ID); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to delete user")
			flashAndRedirect(c, rdb, "error", "Failed to delete the user", "/admin/users")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User deleted")
		flashAndRedirect(c, rdb, "success", fmt.Sprintf("User %s has been deleted", user.Name), "/admin/users")
	}
}
