package api

import (
	"net/http" // HTTP status codes
	"strings"  // Email normalization

	"trading_dashboard/internal/domain" // Importing domain models
	"trading_dashboard/internal/forms"  // Validation rule tables
	"trading_dashboard/internal/utils"  // Session token and flash helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterPageHandler renders the registration form
func RegisterPageHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, rdb, "register.html", gin.H{"title": "Register"})
	}
}

// RegisterHandler creates a user account together with its Stat row.
// Every account owns exactly one Stat from the moment it exists.
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.Register); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/user/register")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.PostForm("password")), bcrypt.DefaultCost)
		if err != nil {
			flashAndRedirect(c, rdb, "error", "Failed to create your account, please try again", "/user/register")
			return
		}
		user := domain.User{
			Name:     c.PostForm("name"),
			Email:    strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
			Password: string(hash),
		}
		// The account and its Stat row exist together or not at all
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&domain.Stat{UserID: user.ID}).Error
		})
		if err != nil {
			// Almost always a duplicate email
			flashAndRedirect(c, rdb, "error", "That email address is already registered", "/user/register")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("Account registered")
		flashAndRedirect(c, rdb, "success", "You are now registered and can log in", "/user/login")
	}
}

// LoginPageHandler renders the login form
func LoginPageHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, rdb, "login.html", gin.H{"title": "Login"})
	}
}

// LoginHandler authenticates a user and sets the session cookie
func LoginHandler(db *gorm.DB, rdb *redis.Client, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := forms.Validate(c.PostForm, forms.Login); msg != "" {
			flashAndRedirect(c, rdb, "error", msg, "/user/login")
			return
		}
		var user domain.User
		email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			flashAndRedirect(c, rdb, "error", "Invalid credentials", "/user/login")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(c.PostForm("password"))); err != nil {
			flashAndRedirect(c, rdb, "error", "Invalid credentials", "/user/login")
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to mint session token")
			flashAndRedirect(c, rdb, "error", "Failed to log you in, please try again", "/user/login")
			return
		}
		c.SetCookie(utils.SessionCookie, token, 24*60*60, "/", "", false, true)
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
		flashAndRedirect(c, rdb, "success", "You are logged out", "/user/login")
	}
}
