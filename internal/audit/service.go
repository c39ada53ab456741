// Package audit keeps a per-user log of every state change with before and
// after snapshots, and can undo changes to expenses, goals and pay rates.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"truckfin-backend/internal/models"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
)

var (
	ErrAlreadyUndone = errors.New("this change has already been undone")
	ErrNotUndoable   = errors.New("this change cannot be undone")
)

type LogOptions struct {
	UserID      uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// Record is a state.Listener that persists every event. A failed write is
// logged and never fails the change that caused it.
func (s *Service) Record(ctx context.Context, ev state.Event) {
	err := WriteLog(ctx, s.store, LogOptions{
		UserID:      ev.UserID,
		EntityType:  ev.EntityType,
		EntityID:    ev.EntityID,
		Action:      ev.Action,
		Description: ev.Description,
		Before:      ev.Before,
		After:       ev.After,
	})
	if err != nil {
		slog.Warn("audit log write failed", "user_id", ev.UserID, "entity", ev.EntityType, "entity_id", ev.EntityID, "error", err)
	}
}

func WriteLog(ctx context.Context, st *store.Store, opts LogOptions) error {
	log := models.AuditLog{
		UserID:      opts.UserID,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  encode(opts.Before),
		AfterData:   encode(opts.After),
	}
	if err := st.CreateAuditLog(ctx, &log); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// encode returns "null" for absent or unencodable snapshots.
func encode(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (s *Service) List(ctx context.Context, userID uint, f store.AuditFilter) ([]models.AuditLog, error) {
	return s.store.ListAuditLogs(ctx, userID, f)
}

// Undo reverses the logged change: a create is deleted (goals are
// deactivated instead), an update is
// restored to its before snapshot and a delete is recreated under a new id.
// The original entry is marked undone and an undo entry is appended.
func (s *Service) Undo(ctx context.Context, userID, logID uint) (*models.AuditLog, error) {
	var undoLog models.AuditLog
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		log, err := tx.GetAuditLog(ctx, userID, logID)
		if err != nil {
			return err
		}
		if log.IsUndone {
			return ErrAlreadyUndone
		}
		if !undoable(log.EntityType) {
			return fmt.Errorf("%w: %s changes are permanent", ErrNotUndoable, log.EntityType)
		}

		entityID := log.EntityID
		restored := log.BeforeData
		switch log.Action {
		case models.AuditActionCreate:
			var kept any
			kept, err = retractEntity(ctx, tx, userID, log.EntityType, log.EntityID)
			restored = encode(kept)
		case models.AuditActionUpdate:
			err = restoreEntity(ctx, tx, userID, log.EntityType, log.EntityID, log.BeforeData)
		case models.AuditActionDelete:
			entityID, err = recreateEntity(ctx, tx, userID, log.EntityType, log.BeforeData)
		default:
			return fmt.Errorf("%w: %s actions are permanent", ErrNotUndoable, log.Action)
		}
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s %d no longer exists", ErrNotUndoable, log.EntityType, log.EntityID)
		}
		if err != nil {
			return err
		}

		now := s.now()
		log.IsUndone = true
		log.UndoneAt = &now
		if err := tx.SaveAuditLog(ctx, log); err != nil {
			return err
		}

		undoLog = models.AuditLog{
			UserID:      userID,
			EntityType:  log.EntityType,
			EntityID:    entityID,
			Action:      models.AuditActionUndo,
			Description: "undone: " + log.Description,
			BeforeData:  log.AfterData,
			AfterData:   restored,
		}
		return tx.CreateAuditLog(ctx, &undoLog)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("audit entry undone", "user_id", userID, "log_id", logID, "entity", undoLog.EntityType, "entity_id", undoLog.EntityID)
	return &undoLog, nil
}

func undoable(entityType string) bool {
	switch entityType {
	case state.EntityExpense, state.EntityGoal, state.EntityPayStructure:
		return true
	}
	return false
}

func decode[T any](data string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("decode %T snapshot: %w", v, err)
	}
	return &v, nil
}

// retractEntity reverses a create. Goals are never deleted, so a created
// goal is deactivated and returned; other entities are removed.
func retractEntity(ctx context.Context, tx *store.Store, userID uint, entityType string, id uint) (any, error) {
	switch entityType {
	case state.EntityExpense:
		return nil, tx.DeleteExpense(ctx, userID, id)
	case state.EntityGoal:
		g, err := tx.GetGoal(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		g.IsActive = false
		if err := tx.SaveGoal(ctx, g); err != nil {
			return nil, err
		}
		return g, nil
	case state.EntityPayStructure:
		return nil, tx.DeletePayStructure(ctx, userID, id)
	default:
		return nil, fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// restoreEntity overwrites the live row with its snapshot. The row must
// still exist and belong to userID.
func restoreEntity(ctx context.Context, tx *store.Store, userID uint, entityType string, id uint, data string) error {
	switch entityType {
	case state.EntityExpense:
		if _, err := tx.GetExpense(ctx, userID, id); err != nil {
			return err
		}
		e, err := decode[models.Expense](data)
		if err != nil {
			return err
		}
		e.ID, e.UserID = id, userID
		return tx.SaveExpense(ctx, e)

	case state.EntityGoal:
		if _, err := tx.GetGoal(ctx, userID, id); err != nil {
			return err
		}
		g, err := decode[models.Goal](data)
		if err != nil {
			return err
		}
		g.ID, g.UserID = id, userID
		return tx.SaveGoal(ctx, g)

	case state.EntityPayStructure:
		if _, err := tx.GetPayStructure(ctx, userID, id); err != nil {
			return err
		}
		p, err := decode[models.PayStructure](data)
		if err != nil {
			return err
		}
		p.ID, p.UserID = id, userID
		return tx.SavePayStructure(ctx, p)

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// recreateEntity inserts a deleted row again under a new id. Goals are
// never deleted, so they have no case here.
func recreateEntity(ctx context.Context, tx *store.Store, userID uint, entityType string, data string) (uint, error) {
	switch entityType {
	case state.EntityExpense:
		e, err := decode[models.Expense](data)
		if err != nil {
			return 0, err
		}
		e.ID, e.UserID = 0, userID
		if err := tx.CreateExpense(ctx, e); err != nil {
			return 0, err
		}
		return e.ID, nil

	case state.EntityPayStructure:
		p, err := decode[models.PayStructure](data)
		if err != nil {
			return 0, err
		}
		p.ID, p.UserID = 0, userID
		if err := tx.CreatePayStructure(ctx, p); err != nil {
			return 0, err
		}
		return p.ID, nil

	default:
		return 0, fmt.Errorf("unknown entity type: %s", entityType)
	}
}
