package models

import (
	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

// AppState is the snapshot a user operates over at one instant.
type AppState struct {
	UserID        uint            `json:"userId"`
	Role          finance.Role    `json:"role"`
	Goals         []Goal          `json:"goals"`
	Expenses      []Expense       `json:"expenses"`
	Income        []IncomeLog     `json:"income"`
	PayStructures []PayStructure  `json:"payStructures"`
	AvailableCash decimal.Decimal `json:"availableCash"`
	HideIncome    bool            `json:"hideIncome"`
	TaxSettings   *TaxSettings    `json:"taxSettings,omitempty"`
}

// All returns every model to migrate.
func All() []any {
	return []any{
		&User{},
		&Expense{},
		&Goal{},
		&IncomeLog{},
		&PayStructure{},
		&TaxSettings{},
		&CashAdjustment{},
		&AuditLog{},
	}
}
