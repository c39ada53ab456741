package state

import (
	"context"
	"time"

	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/shopspring/decimal"
)

type ActivityInput struct {
	Date   *time.Time
	Miles  *int
	Loads  *int
	Hours  *decimal.Decimal
	Income decimal.Decimal
	Notes  string
}

type IncomeLogPatch struct {
	Date   *time.Time
	Miles  *int
	Loads  *int
	Hours  *decimal.Decimal
	Income *decimal.Decimal
	Notes  *string
}

func (s *Service) ListIncomeLogs(ctx context.Context, userID uint) ([]models.IncomeLog, error) {
	return s.store.ListIncomeLogs(ctx, userID)
}

// LogDailyActivity appends an income log and, when income is positive,
// credits it to available cash. Both happen in one transaction.
func (s *Service) LogDailyActivity(ctx context.Context, userID uint, in ActivityInput) (*models.IncomeLog, *models.User, error) {
	date := s.now()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	l := &models.IncomeLog{
		UserID: userID,
		Date:   date,
		Miles:  in.Miles,
		Loads:  in.Loads,
		Hours:  in.Hours,
		Income: in.Income,
		Notes:  in.Notes,
	}

	var (
		user *models.User
		adj  *models.CashAdjustment
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		if user, err = tx.GetUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.CreateIncomeLog(ctx, l); err != nil {
			return err
		}
		if !l.Income.IsPositive() {
			return nil
		}
		user, adj, err = s.adjustCash(ctx, tx, userID, l.Income, models.CashSourceIncomeLog, &l.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	events := []Event{{UserID: userID, EntityType: EntityIncomeLog, EntityID: l.ID, Action: models.AuditActionCreate, Description: "income logged: " + l.Income.String(), After: l}}
	if adj != nil {
		events = append(events, cashEvent(adj))
	}
	s.emit(ctx, events...)
	return l, user, nil
}

// UpdateIncomeLog edits a log. Cash credited at creation is not revisited.
func (s *Service) UpdateIncomeLog(ctx context.Context, userID, id uint, p IncomeLogPatch) (*models.IncomeLog, error) {
	l, err := s.store.GetIncomeLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *l

	if p.Date != nil {
		l.Date = p.Date.UTC()
	}
	if p.Miles != nil {
		l.Miles = p.Miles
	}
	if p.Loads != nil {
		l.Loads = p.Loads
	}
	if p.Hours != nil {
		l.Hours = p.Hours
	}
	if p.Income != nil {
		l.Income = *p.Income
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}

	if err := s.store.SaveIncomeLog(ctx, l); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityIncomeLog, EntityID: id, Action: models.AuditActionUpdate, Description: "income log updated", Before: &before, After: l})
	return l, nil
}

// DeleteIncomeLog removes a log without touching available cash.
func (s *Service) DeleteIncomeLog(ctx context.Context, userID, id uint) error {
	l, err := s.store.GetIncomeLog(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIncomeLog(ctx, userID, id); err != nil {
		return err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityIncomeLog, EntityID: id, Action: models.AuditActionDelete, Description: "income log deleted", Before: l})
	return nil
}
