package models

import (
	"time"

	"truckfin-backend/internal/finance"

	"github.com/shopspring/decimal"
)

// TaxSettings is a single row per user.
type TaxSettings struct {
	ID                   uint             `gorm:"primaryKey" json:"-"`
	UserID               uint             `gorm:"uniqueIndex;not null" json:"userId"`
	FederalTaxRate       decimal.Decimal  `gorm:"type:numeric;not null" json:"federalTaxRate"`
	SocialSecurityRate   decimal.Decimal  `gorm:"type:numeric;not null" json:"socialSecurityRate"`
	MedicareRate         decimal.Decimal  `gorm:"type:numeric;not null" json:"medicareRate"`
	StateTaxRate         decimal.Decimal  `gorm:"type:numeric;not null" json:"stateTaxRate"`
	StateName            string           `gorm:"size:50" json:"stateName,omitempty"`
	SelfEmploymentTax    *decimal.Decimal `gorm:"type:numeric" json:"selfEmploymentTax,omitempty"`
	UseStandardDeduction bool             `gorm:"not null" json:"useStandardDeduction"`
	CreatedAt            time.Time        `json:"-"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

func (t TaxSettings) Rates() finance.TaxRates {
	r := finance.TaxRates{
		Federal:        t.FederalTaxRate,
		SocialSecurity: t.SocialSecurityRate,
		Medicare:       t.MedicareRate,
		State:          t.StateTaxRate,
		SelfEmployment: decimal.Zero,
	}
	if t.SelfEmploymentTax != nil {
		r.SelfEmployment = *t.SelfEmploymentTax
	}
	return r
}
