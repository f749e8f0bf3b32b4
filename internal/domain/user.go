package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Name     string `gorm:"not null"`        // Full name
	Email    string `gorm:"unique;not null"` // Unique email, used as the login identity
	Password string `gorm:"not null"`        // Hashed password
	Role     string `gorm:"default:user"`    // Role: user or admin

	Stat          Stat           `gorm:"constraint:OnUpdate:CASCADE;"` // One-to-one account figures
	Deposits      []Deposit      `gorm:"foreignKey:UserID"`            // Deposit claims
	Withdrawals   []Withdrawal   `gorm:"foreignKey:UserID"`            // Withdrawal requests
	Notifications []Notification `gorm:"foreignKey:UserID"`            // Admin-authored messages
}
