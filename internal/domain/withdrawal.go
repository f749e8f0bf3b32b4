package domain

// Withdrawal is a user withdrawal request, append-only.
type Withdrawal struct {
	ID     uint   `gorm:"primaryKey"`             // Primary key
	UserID uint   `gorm:"index;not null"`         // Foreign key to User
	Amount string `gorm:"not null"`               // Requested amount, as submitted
	Status bool   `gorm:"not null;default:false"` // false = pending
	Date   string `gorm:"not null"`               // Calendar date, "YYYY-M-D"
}
