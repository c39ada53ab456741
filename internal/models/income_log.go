package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeLog records one day's or one session's earnings. Only Income is
// required. Creating a log with positive income credits the user's cash
// once; later edits or deletion never touch cash again.
type IncomeLog struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"index;not null" json:"userId"`
	Date      time.Time        `gorm:"index;not null" json:"date"`
	Miles     *int             `json:"miles"`
	Loads     *int             `json:"loads"`
	Hours     *decimal.Decimal `gorm:"type:numeric" json:"hours"`
	Income    decimal.Decimal  `gorm:"type:numeric;not null" json:"income"`
	Notes     string           `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
