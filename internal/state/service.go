// Package state owns a user's financial state. All mutations go through
// Service, which applies them in a single transaction, keeps cached derived
// fields (Expense.Monthly, Goal.Progress) in step with their sources and
// notifies listeners after commit.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/shopspring/decimal"
)

// Seed values for a new or reset user.
var (
	InitialCash = decimal.NewFromInt(500)

	DefaultGoalName  = "Take a Week Off"
	defaultGoalSaved = decimal.NewFromInt(294)
)

// Entity type names carried by events and audit logs.
const (
	EntityUser           = "user"
	EntityExpense        = "expense"
	EntityGoal           = "goal"
	EntityIncomeLog      = "income_log"
	EntityPayStructure   = "pay_structure"
	EntityTaxSettings    = "tax_settings"
	EntityCashAdjustment = "cash_adjustment"
)

// Event describes one committed change.
type Event struct {
	UserID      uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Listener func(ctx context.Context, ev Event)

type Service struct {
	store *store.Store
	now   func() time.Time

	mu        sync.RWMutex
	listeners []Listener
}

type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l to receive every event emitted after it is added.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) emit(ctx context.Context, events ...Event) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()

	for _, ev := range events {
		slog.Debug("state event", "user_id", ev.UserID, "entity", ev.EntityType, "entity_id", ev.EntityID, "action", ev.Action)
		for _, l := range listeners {
			l(ctx, ev)
		}
	}
}

func seedGoal(userID uint) *models.Goal {
	g := &models.Goal{
		UserID:   userID,
		Name:     DefaultGoalName,
		Amount:   finance.DefaultWeekOffGoalAmount,
		Saved:    defaultGoalSaved,
		Priority: 1,
		IsActive: true,
	}
	g.RecomputeProgress()
	return g
}

// Register creates a user with the seeded initial snapshot: InitialCash and
// the default week-off goal.
func (s *Service) Register(ctx context.Context, username, passwordHash string, role finance.Role) (*models.User, error) {
	user := &models.User{
		Username:      username,
		PasswordHash:  passwordHash,
		Role:          role,
		AvailableCash: InitialCash,
	}

	var goal *models.Goal
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		goal = seedGoal(user.ID)
		return tx.CreateGoal(ctx, goal)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx,
		Event{UserID: user.ID, EntityType: EntityUser, EntityID: user.ID, Action: models.AuditActionCreate, Description: "user registered", After: user},
		Event{UserID: user.ID, EntityType: EntityGoal, EntityID: goal.ID, Action: models.AuditActionCreate, Description: "default goal seeded", After: goal},
	)
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// Snapshot assembles the user's AppState.
func (s *Service) Snapshot(ctx context.Context, userID uint) (*models.AppState, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	income, err := s.store.ListIncomeLogs(ctx, userID)
	if err != nil {
		return nil, err
	}
	pay, err := s.store.ListPayStructures(ctx, userID)
	if err != nil {
		return nil, err
	}
	tax, err := s.store.GetTaxSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.AppState{
		UserID:        user.ID,
		Role:          user.Role,
		Goals:         goals,
		Expenses:      expenses,
		Income:        income,
		PayStructures: pay,
		AvailableCash: user.AvailableCash,
		HideIncome:    user.HideIncome,
		TaxSettings:   tax,
	}, nil
}

// UpdateCash adds amount (signed) to the user's available cash.
func (s *Service) UpdateCash(ctx context.Context, userID uint, amount decimal.Decimal) (*models.User, error) {
	var (
		user *models.User
		adj  *models.CashAdjustment
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		user, adj, err = s.adjustCash(ctx, tx, userID, amount, models.CashSourceManual, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, cashEvent(adj))
	return user, nil
}

func (s *Service) adjustCash(ctx context.Context, tx *store.Store, userID uint, amount decimal.Decimal, source models.CashSource, incomeLogID *uint) (*models.User, *models.CashAdjustment, error) {
	user, err := tx.IncrementCash(ctx, userID, amount)
	if err != nil {
		return nil, nil, err
	}
	adj := &models.CashAdjustment{
		UserID:      userID,
		Date:        s.now(),
		Source:      source,
		Amount:      amount,
		Balance:     user.AvailableCash,
		IncomeLogID: incomeLogID,
	}
	if err := tx.CreateCashAdjustment(ctx, adj); err != nil {
		return nil, nil, err
	}
	return user, adj, nil
}

func cashEvent(adj *models.CashAdjustment) Event {
	return Event{
		UserID:      adj.UserID,
		EntityType:  EntityCashAdjustment,
		EntityID:    adj.ID,
		Action:      models.AuditActionCreate,
		Description: "cash adjusted by " + adj.Amount.String(),
		After:       adj,
	}
}

// UpdateSettings stores the hide-income display flag.
func (s *Service) UpdateSettings(ctx context.Context, userID uint, hideIncome bool) (*models.User, error) {
	return s.updateUser(ctx, userID, map[string]any{"hide_income": hideIncome}, "settings updated")
}

// SetRole changes the user's role. Existing entities are left untouched.
func (s *Service) SetRole(ctx context.Context, userID uint, role finance.Role) (*models.User, error) {
	return s.updateUser(ctx, userID, map[string]any{"role": role}, "role set to "+string(role))
}

func (s *Service) updateUser(ctx context.Context, userID uint, fields map[string]any, desc string) (*models.User, error) {
	before, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	after, err := s.store.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityUser, EntityID: userID, Action: models.AuditActionUpdate, Description: desc, Before: before, After: after})
	return after, nil
}

// Reset discards all of the user's state and restores the seeded snapshot.
func (s *Service) Reset(ctx context.Context, userID uint) (*models.AppState, error) {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.DeleteUserData(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.UpdateUser(ctx, userID, map[string]any{"available_cash": InitialCash, "hide_income": false}); err != nil {
			return err
		}
		return tx.CreateGoal(ctx, seedGoal(userID))
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityUser, EntityID: userID, Action: models.AuditActionReset, Description: "state reset", After: snap})
	return snap, nil
}
