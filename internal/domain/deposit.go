package domain

// Deposit is a user-submitted deposit claim awaiting manual verification.
// Amount is kept as the raw submitted string; the write path only checks
// presence, so no numeric parse happens here.
type Deposit struct {
	ID       uint   `gorm:"primaryKey"`             // Primary key
	UserID   uint   `gorm:"index;not null"`         // Foreign key to User
	Address  string `gorm:"not null"`               // Source wallet address
	Amount   string `gorm:"not null"`               // Claimed amount, as submitted
	Date     string `gorm:"not null"`               // Calendar date, "YYYY-M-D"
	Received bool   `gorm:"not null;default:false"` // false until verified
}
