package audit

import (
	"context"
	"errors"
	"testing"

	"truckfin-backend/internal/database/dbtest"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"

	"github.com/shopspring/decimal"
)

func setup(t *testing.T) (*state.Service, *Service, *store.Store, uint) {
	t.Helper()
	st := store.New(dbtest.Open(t))
	svc := state.New(st)
	auditSvc := NewService(st)
	svc.Subscribe(auditSvc.Record)

	u, err := svc.Register(context.Background(), "auditor", "hash", finance.RoleOwner)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return svc, auditSvc, st, u.ID
}

func latest(t *testing.T, a *Service, userID uint, entityType string) models.AuditLog {
	t.Helper()
	logs, err := a.List(context.Background(), userID, store.AuditFilter{EntityType: entityType, Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) == 0 {
		t.Fatalf("no %s audit logs", entityType)
	}
	return logs[0]
}

func TestRecordWritesSnapshots(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	e, err := svc.AddExpense(ctx, userID, state.ExpenseInput{Name: "Fuel", Amount: decimal.NewFromInt(100), Frequency: finance.FrequencyWeekly, Category: "fuel"})
	if err != nil {
		t.Fatal(err)
	}

	log := latest(t, a, userID, state.EntityExpense)
	if log.Action != models.AuditActionCreate || log.EntityID != e.ID {
		t.Errorf("log = %+v", log)
	}
	if log.BeforeData != "null" || log.AfterData == "null" {
		t.Errorf("snapshots: before %q after %q", log.BeforeData, log.AfterData)
	}

	all, err := a.List(ctx, userID, store.AuditFilter{})
	if err != nil {
		t.Fatal(err)
	}
	// user create, seeded goal, expense create
	if len(all) != 3 {
		t.Errorf("got %d logs, want 3", len(all))
	}
}

func TestUndoCreate(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	if _, err := svc.AddExpense(ctx, userID, state.ExpenseInput{Name: "Phone", Amount: decimal.NewFromInt(80), Frequency: finance.FrequencyMonthly, Category: "utilities"}); err != nil {
		t.Fatal(err)
	}
	log := latest(t, a, userID, state.EntityExpense)

	undo, err := a.Undo(ctx, userID, log.ID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.Action != models.AuditActionUndo {
		t.Errorf("undo action = %s", undo.Action)
	}

	list, err := svc.ListExpenses(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expense survived undo: %+v", list)
	}

	if _, err := a.Undo(ctx, userID, log.ID); !errors.Is(err, ErrAlreadyUndone) {
		t.Errorf("second undo = %v, want ErrAlreadyUndone", err)
	}
}

func TestUndoGoalCreateDeactivates(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	g, err := svc.AddGoal(ctx, userID, state.GoalInput{Name: "New tires", Amount: decimal.NewFromInt(1600)})
	if err != nil {
		t.Fatal(err)
	}
	log := latest(t, a, userID, state.EntityGoal)
	if log.Action != models.AuditActionCreate || log.EntityID != g.ID {
		t.Fatalf("latest goal log = %+v", log)
	}

	undo, err := a.Undo(ctx, userID, log.ID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.AfterData == "null" {
		t.Error("undo log should carry the deactivated goal")
	}

	goals, err := svc.ListGoals(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	var found *models.Goal
	for i := range goals {
		if goals[i].ID == g.ID {
			found = &goals[i]
		}
	}
	if found == nil {
		t.Fatal("goal was deleted by undo")
	}
	if found.IsActive {
		t.Error("goal still active after undo")
	}
}

func TestUndoUpdateRestoresBefore(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	e, err := svc.AddExpense(ctx, userID, state.ExpenseInput{Name: "Rent", Amount: decimal.NewFromInt(1200), Frequency: finance.FrequencyMonthly, Category: "housing"})
	if err != nil {
		t.Fatal(err)
	}
	amount := decimal.NewFromInt(1500)
	if _, err := svc.UpdateExpense(ctx, userID, e.ID, state.ExpensePatch{Amount: &amount}); err != nil {
		t.Fatal(err)
	}

	log := latest(t, a, userID, state.EntityExpense)
	if log.Action != models.AuditActionUpdate {
		t.Fatalf("latest action = %s, want update", log.Action)
	}
	if _, err := a.Undo(ctx, userID, log.ID); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	list, err := svc.ListExpenses(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].Amount.Equal(decimal.NewFromInt(1200)) || !list[0].Monthly.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("restored expense = %+v", list)
	}
}

func TestUndoDeleteRecreates(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	p, err := svc.AddPayRate(ctx, userID, state.PayRateInput{PayType: "per_mile", Rate: decimal.RequireFromString("0.65")})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeletePayRate(ctx, userID, p.ID); err != nil {
		t.Fatal(err)
	}

	log := latest(t, a, userID, state.EntityPayStructure)
	undo, err := a.Undo(ctx, userID, log.ID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}

	rates, err := svc.ListPayRates(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rates) != 1 || rates[0].PayType != "per_mile" || !rates[0].Rate.Equal(decimal.RequireFromString("0.65")) {
		t.Fatalf("recreated rates = %+v", rates)
	}
	if undo.EntityID != rates[0].ID {
		t.Errorf("undo entity id = %d, want %d", undo.EntityID, rates[0].ID)
	}
}

func TestUndoRejectsPermanentChanges(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	if _, _, err := svc.LogDailyActivity(ctx, userID, state.ActivityInput{Income: decimal.NewFromInt(300)}); err != nil {
		t.Fatal(err)
	}
	log := latest(t, a, userID, state.EntityIncomeLog)
	if _, err := a.Undo(ctx, userID, log.ID); !errors.Is(err, ErrNotUndoable) {
		t.Errorf("undo income log = %v, want ErrNotUndoable", err)
	}

	if _, err := a.Undo(ctx, userID+1, log.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("undo by another user = %v, want ErrNotFound", err)
	}
}

func TestUndoMissingEntity(t *testing.T) {
	svc, a, _, userID := setup(t)
	ctx := context.Background()

	e, err := svc.AddExpense(ctx, userID, state.ExpenseInput{Name: "Gym", Amount: decimal.NewFromInt(30), Frequency: finance.FrequencyMonthly, Category: "personal"})
	if err != nil {
		t.Fatal(err)
	}
	created := latest(t, a, userID, state.EntityExpense)
	if err := svc.DeleteExpense(ctx, userID, e.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := a.Undo(ctx, userID, created.ID); !errors.Is(err, ErrNotUndoable) {
		t.Errorf("undo create of deleted expense = %v, want ErrNotUndoable", err)
	}
}
