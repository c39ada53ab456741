package state

import (
	"context"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

type TaxSettingsInput struct {
	FederalTaxRate       decimal.Decimal
	SocialSecurityRate   decimal.Decimal
	MedicareRate         decimal.Decimal
	StateCode            string
	SelfEmploymentTax    *decimal.Decimal
	UseStandardDeduction bool
}

// TaxSettings returns the stored settings, or the role defaults when the
// user has none yet.
func (s *Service) TaxSettings(ctx context.Context, userID uint) (*models.TaxSettings, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTaxSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}

	d := finance.DefaultTaxRates(user.Role)
	t = &models.TaxSettings{
		UserID:               userID,
		FederalTaxRate:       d.Federal,
		SocialSecurityRate:   d.SocialSecurity,
		MedicareRate:         d.Medicare,
		StateTaxRate:         d.State,
		UseStandardDeduction: true,
	}
	if user.Role == finance.RoleOwner {
		t.SelfEmploymentTax = &d.SelfEmployment
	}
	return t, nil
}

// SaveTaxSettings resolves the state rate from its code and replaces the
// user's settings. Self-employment tax is kept for owner-operators only,
// defaulting to finance.DefaultSelfEmploymentRate.
func (s *Service) SaveTaxSettings(ctx context.Context, userID uint, in TaxSettingsInput) (*models.TaxSettings, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	before, err := s.store.GetTaxSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	t := &models.TaxSettings{
		UserID:               userID,
		FederalTaxRate:       in.FederalTaxRate,
		SocialSecurityRate:   in.SocialSecurityRate,
		MedicareRate:         in.MedicareRate,
		StateTaxRate:         decimal.Zero,
		UseStandardDeduction: in.UseStandardDeduction,
	}
	if st, ok := finance.LookupStateTax(in.StateCode); ok {
		t.StateName = st.Name
		t.StateTaxRate = st.Rate
	}
	if user.Role == finance.RoleOwner {
		se := finance.DefaultSelfEmploymentRate
		if in.SelfEmploymentTax != nil {
			se = *in.SelfEmploymentTax
		}
		t.SelfEmploymentTax = &se
	}

	if err := s.store.UpsertTaxSettings(ctx, t); err != nil {
		return nil, err
	}
	saved, err := s.store.GetTaxSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	action := models.AuditActionCreate
	var prev any
	if before != nil {
		action = models.AuditActionUpdate
		prev = before
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityTaxSettings, EntityID: saved.ID, Action: action, Description: "tax settings saved", Before: prev, After: saved})
	return saved, nil
}

// EstimateTax applies the user's tax settings to income.
func (s *Service) EstimateTax(ctx context.Context, userID uint, income decimal.Decimal) (finance.TaxEstimate, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return finance.TaxEstimate{}, err
	}
	t, err := s.TaxSettings(ctx, userID)
	if err != nil {
		return finance.TaxEstimate{}, err
	}
	return finance.EstimateTax(income, t.Rates(), user.Role), nil
}
