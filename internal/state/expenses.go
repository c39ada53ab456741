package state

import (
	"context"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

type ExpenseInput struct {
	Name      string
	Amount    decimal.Decimal
	Frequency finance.Frequency
	Category  finance.ExpenseCategory
}

// ExpensePatch holds the fields to change; nil fields are left alone.
type ExpensePatch struct {
	Name      *string
	Amount    *decimal.Decimal
	Frequency *finance.Frequency
	Category  *finance.ExpenseCategory
	IsActive  *bool
}

func (s *Service) ListExpenses(ctx context.Context, userID uint) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx, userID)
}

// AddExpense stores a new active expense with its monthly equivalent.
func (s *Service) AddExpense(ctx context.Context, userID uint, in ExpenseInput) (*models.Expense, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	e := &models.Expense{
		UserID:    userID,
		Name:      in.Name,
		Amount:    in.Amount,
		Frequency: in.Frequency,
		Category:  in.Category,
		IsActive:  true,
		CreatedAt: s.now(),
	}
	e.RecomputeMonthly()

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityExpense, EntityID: e.ID, Action: models.AuditActionCreate, Description: "expense added: " + e.Name, After: e})
	return e, nil
}

// UpdateExpense applies p and recomputes Monthly when the amount or the
// frequency changed.
func (s *Service) UpdateExpense(ctx context.Context, userID, id uint, p ExpensePatch) (*models.Expense, error) {
	e, err := s.store.GetExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *e

	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	if p.Amount != nil || p.Frequency != nil {
		if p.Amount != nil {
			e.Amount = *p.Amount
		}
		if p.Frequency != nil {
			e.Frequency = *p.Frequency
		}
		e.RecomputeMonthly()
	}

	if err := s.store.SaveExpense(ctx, e); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityExpense, EntityID: e.ID, Action: models.AuditActionUpdate, Description: "expense updated: " + e.Name, Before: &before, After: e})
	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, userID, id uint) error {
	e, err := s.store.GetExpense(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityExpense, EntityID: id, Action: models.AuditActionDelete, Description: "expense deleted: " + e.Name, Before: e})
	return nil
}
