package domain

// Notification is an admin-authored message stored per user and
// displayed on the dashboard read paths.
type Notification struct {
	ID     uint   `gorm:"primaryKey"`     // Primary key
	UserID uint   `gorm:"index;not null"` // Foreign key to User
	Title  string `gorm:"not null"`       // Message title, also the email subject
	Body   string `gorm:"not null"`       // Message body
	Date   string `gorm:"not null"`       // Calendar date, "YYYY-M-D"
}
