package state

import (
	"context"
	"time"

	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/shopspring/decimal"
)

type GoalInput struct {
	Name     string
	Amount   decimal.Decimal
	Deadline *time.Time
	Priority *int
}

type GoalPatch struct {
	Name          *string
	Amount        *decimal.Decimal
	Deadline      *time.Time
	ClearDeadline bool
	Priority      *int
	IsActive      *bool
}

func (s *Service) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

// AddGoal stores a new active goal with nothing saved. Without an explicit
// priority the goal goes last.
func (s *Service) AddGoal(ctx context.Context, userID uint, in GoalInput) (*models.Goal, error) {
	g := &models.Goal{
		UserID:   userID,
		Name:     in.Name,
		Amount:   in.Amount,
		Saved:    decimal.Zero,
		Progress: 0,
		Deadline: in.Deadline,
		IsActive: true,
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			return err
		}
		if in.Priority != nil {
			g.Priority = *in.Priority
		} else {
			n, err := tx.CountGoals(ctx, userID)
			if err != nil {
				return err
			}
			g.Priority = int(n) + 1
		}
		return tx.CreateGoal(ctx, g)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, Event{UserID: userID, EntityType: EntityGoal, EntityID: g.ID, Action: models.AuditActionCreate, Description: "goal added: " + g.Name, After: g})
	return g, nil
}

// UpdateGoal applies p. Progress is recomputed when the target changes.
// Deactivating keeps the goal and its history.
func (s *Service) UpdateGoal(ctx context.Context, userID, id uint, p GoalPatch) (*models.Goal, error) {
	g, err := s.store.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *g

	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Amount != nil {
		g.Amount = *p.Amount
		g.RecomputeProgress()
	}
	if p.ClearDeadline {
		g.Deadline = nil
	} else if p.Deadline != nil {
		g.Deadline = p.Deadline
	}
	if p.Priority != nil {
		g.Priority = *p.Priority
	}
	if p.IsActive != nil {
		g.IsActive = *p.IsActive
	}

	return s.saveGoal(ctx, &before, g, "goal updated: "+g.Name)
}

// UpdateGoalProgress sets the saved amount and recomputes progress.
func (s *Service) UpdateGoalProgress(ctx context.Context, userID, id uint, saved decimal.Decimal) (*models.Goal, error) {
	g, err := s.store.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *g

	g.Saved = saved
	g.RecomputeProgress()

	return s.saveGoal(ctx, &before, g, "goal progress: "+g.Name)
}

func (s *Service) saveGoal(ctx context.Context, before, g *models.Goal, desc string) (*models.Goal, error) {
	if err := s.store.SaveGoal(ctx, g); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: g.UserID, EntityType: EntityGoal, EntityID: g.ID, Action: models.AuditActionUpdate, Description: desc, Before: before, After: g})
	return g, nil
}
