package domain

import "github.com/shopspring/decimal"

// Stat holds the per-user account figures shown on the dashboard.
// Exactly one row per user, created with the account and mutated only
// through the admin workflow. Figures are stored as decimals, never floats.
type Stat struct {
	ID        uint            `gorm:"primaryKey"`                         // Primary key
	UserID    uint            `gorm:"uniqueIndex"`                        // Foreign key to User
	Balance   decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"` // Account balance
	Earning   decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"` // Accumulated earnings
	Deposit   decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"` // Deposited total
	Withdraws decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"` // Withdrawn total
}
