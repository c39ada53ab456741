package models

import (
	"time"

	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

// PayStructure is a reference compensation rate. Rates are informational
// and never applied to income logs.
type PayStructure struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	PayType     finance.PayType `gorm:"size:30;not null" json:"payType"`
	Rate        decimal.Decimal `gorm:"type:numeric;not null" json:"rate"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	IsActive    bool            `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
