package models

import (
	"time"

	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. Progress caches
// finance.GoalProgress(Saved, Amount) and is only updated by explicit
// calls; it may exceed 100 when more than the target is saved.
type Goal struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"userId"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Saved     decimal.Decimal `gorm:"type:numeric;not null" json:"saved"`
	Progress  int             `gorm:"not null" json:"progress"`
	Deadline  *time.Time      `json:"deadline"`
	Priority  int             `gorm:"not null" json:"priority"`
	IsActive  bool            `gorm:"not null" json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (g *Goal) RecomputeProgress() {
	g.Progress = finance.GoalProgress(g.Saved, g.Amount)
}

// DisplayProgress is Progress clamped to [0, 100].
func (g Goal) DisplayProgress() int {
	return finance.ClampProgress(g.Progress)
}
