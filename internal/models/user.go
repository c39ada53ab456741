package models

import (
	"time"

	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Username      string          `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash  string          `gorm:"size:255;not null" json:"-"`
	Role          finance.Role    `gorm:"size:20" json:"role"`
	AvailableCash decimal.Decimal `gorm:"type:numeric;not null" json:"availableCash"`
	HideIncome    bool            `gorm:"not null" json:"hideIncome"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
