package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashSource string

const (
	CashSourceIncomeLog CashSource = "income_log" // credited by logging income
	CashSourceManual    CashSource = "manual"     // PATCH /users/:id/cash
)

// CashAdjustment is the history of changes applied to User.AvailableCash.
// The balance itself is never recomputed from this table.
type CashAdjustment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	Source      CashSource      `gorm:"size:20;not null" json:"source"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Balance     decimal.Decimal `gorm:"type:numeric;not null" json:"balance"`
	IncomeLogID *uint           `json:"incomeLogId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
