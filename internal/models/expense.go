package models

import (
	"time"

	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

// Expense is a recurring or one-time cost. Monthly caches
// finance.Normalize(Amount, Frequency) and must be recomputed whenever
// either source field changes.
type Expense struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	UserID    uint                    `gorm:"index;not null" json:"userId"`
	Name      string                  `gorm:"size:100;not null" json:"name"`
	Amount    decimal.Decimal         `gorm:"type:numeric;not null" json:"amount"`
	Frequency finance.Frequency       `gorm:"size:10;not null" json:"frequency"`
	Monthly   decimal.Decimal         `gorm:"type:numeric;not null" json:"monthly"`
	Category  finance.ExpenseCategory `gorm:"size:40;not null" json:"category"`
	IsActive  bool                    `gorm:"not null" json:"isActive"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

func (e Expense) MonthlyAmount() decimal.Decimal { return e.Monthly }

func (e *Expense) RecomputeMonthly() {
	e.Monthly = finance.Normalize(e.Amount, e.Frequency)
}

// ActiveExpenses filters out deactivated expenses.
func ActiveExpenses(expenses []Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out
}
