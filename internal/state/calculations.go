package state

import (
	"context"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

// WeekOff runs the affordability check over the user's active expenses and
// current cash.
func (s *Service) WeekOff(ctx context.Context, userID uint) (finance.WeekOffResult, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return finance.WeekOffResult{}, err
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return finance.WeekOffResult{}, err
	}
	return finance.CalculateWeekOff(models.ActiveExpenses(expenses), user.AvailableCash), nil
}

// WhatIf projects amount over period against the user's active expenses.
// referenceGoal is the goal target WeekOffProgress is measured against.
func (s *Service) WhatIf(ctx context.Context, userID uint, amount decimal.Decimal, period finance.Period, referenceGoal decimal.Decimal) (finance.WhatIfResult, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return finance.WhatIfResult{}, err
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return finance.WhatIfResult{}, err
	}
	return finance.CalculateWhatIf(amount, period, models.ActiveExpenses(expenses), referenceGoal), nil
}
