package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key for session cookies
	RedisAddr  string // Redis server address (flash message store)
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	SMTPHost   string // SMTP server host
	SMTPPort   int    // SMTP server port
	SMTPUser   string // SMTP auth user
	SMTPPass   string // SMTP auth password
	MailFrom   string // From address on outbound mail
	OpsMailbox string // Internal mailbox receiving withdrawal alerts
	SiteURL    string // Public site URL embedded in notification emails
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	return &Config{
		AppPort:    os.Getenv("APP_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    redisDB,
		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   smtpPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		MailFrom:   os.Getenv("MAIL_FROM"),
		OpsMailbox: os.Getenv("OPS_MAILBOX"),
		SiteURL:    os.Getenv("SITE_URL"),
		IsProd:     os.Getenv("IS_PROD") == "true",
	}
}
