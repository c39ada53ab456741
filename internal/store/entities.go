package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"truckfin-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Expenses

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	return create(ctx, s.db, e)
}

func (s *Store) GetExpense(ctx context.Context, userID, id uint) (*models.Expense, error) {
	return findOwned[models.Expense](ctx, s.db, userID, id)
}

func (s *Store) ListExpenses(ctx context.Context, userID uint) ([]models.Expense, error) {
	return listOwned[models.Expense](ctx, s.db, userID, "created_at asc, id asc")
}

func (s *Store) SaveExpense(ctx context.Context, e *models.Expense) error {
	return save(ctx, s.db, e)
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uint) error {
	return deleteOwned[models.Expense](ctx, s.db, userID, id)
}

// Goals

func (s *Store) CreateGoal(ctx context.Context, g *models.Goal) error {
	return create(ctx, s.db, g)
}

func (s *Store) GetGoal(ctx context.Context, userID, id uint) (*models.Goal, error) {
	return findOwned[models.Goal](ctx, s.db, userID, id)
}

func (s *Store) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	return listOwned[models.Goal](ctx, s.db, userID, "priority asc, id asc")
}

func (s *Store) CountGoals(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.Goal{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return n, nil
}

func (s *Store) SaveGoal(ctx context.Context, g *models.Goal) error {
	return save(ctx, s.db, g)
}

// Income logs

func (s *Store) CreateIncomeLog(ctx context.Context, l *models.IncomeLog) error {
	return create(ctx, s.db, l)
}

func (s *Store) GetIncomeLog(ctx context.Context, userID, id uint) (*models.IncomeLog, error) {
	return findOwned[models.IncomeLog](ctx, s.db, userID, id)
}

// ListIncomeLogs returns a user's logs newest first.
func (s *Store) ListIncomeLogs(ctx context.Context, userID uint) ([]models.IncomeLog, error) {
	return listOwned[models.IncomeLog](ctx, s.db, userID, "date desc, id desc")
}

// ListIncomeLogsBetween returns logs dated in [from, to), oldest first.
func (s *Store) ListIncomeLogsBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.IncomeLog, error) {
	out := []models.IncomeLog{}
	err := s.conn(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list income logs: %w", err)
	}
	return out, nil
}

func (s *Store) SaveIncomeLog(ctx context.Context, l *models.IncomeLog) error {
	return save(ctx, s.db, l)
}

func (s *Store) DeleteIncomeLog(ctx context.Context, userID, id uint) error {
	return deleteOwned[models.IncomeLog](ctx, s.db, userID, id)
}

// Pay structures

func (s *Store) CreatePayStructure(ctx context.Context, p *models.PayStructure) error {
	return create(ctx, s.db, p)
}

func (s *Store) GetPayStructure(ctx context.Context, userID, id uint) (*models.PayStructure, error) {
	return findOwned[models.PayStructure](ctx, s.db, userID, id)
}

func (s *Store) ListPayStructures(ctx context.Context, userID uint) ([]models.PayStructure, error) {
	return listOwned[models.PayStructure](ctx, s.db, userID, "id asc")
}

func (s *Store) SavePayStructure(ctx context.Context, p *models.PayStructure) error {
	return save(ctx, s.db, p)
}

func (s *Store) DeletePayStructure(ctx context.Context, userID, id uint) error {
	return deleteOwned[models.PayStructure](ctx, s.db, userID, id)
}

// Tax settings

// GetTaxSettings returns nil, nil when the user has not saved any.
func (s *Store) GetTaxSettings(ctx context.Context, userID uint) (*models.TaxSettings, error) {
	var t models.TaxSettings
	err := s.conn(ctx).Where("user_id = ?", userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tax settings: %w", err)
	}
	return &t, nil
}

// UpsertTaxSettings replaces the user's single tax settings row.
func (s *Store) UpsertTaxSettings(ctx context.Context, t *models.TaxSettings) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"federal_tax_rate", "social_security_rate", "medicare_rate", "state_tax_rate",
			"state_name", "self_employment_tax", "use_standard_deduction", "updated_at",
		}),
	}).Create(t).Error
	if err != nil {
		return fmt.Errorf("upsert tax settings: %w", err)
	}
	return nil
}

// Cash adjustments

func (s *Store) CreateCashAdjustment(ctx context.Context, a *models.CashAdjustment) error {
	return create(ctx, s.db, a)
}

// ListCashAdjustments returns adjustments dated within the optional bounds
// (inclusive), oldest first.
func (s *Store) ListCashAdjustments(ctx context.Context, userID uint, from, to *time.Time) ([]models.CashAdjustment, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	out := []models.CashAdjustment{}
	if err := q.Order("date asc, id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list cash adjustments: %w", err)
	}
	return out, nil
}

// Audit logs

func (s *Store) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return create(ctx, s.db, l)
}

func (s *Store) GetAuditLog(ctx context.Context, userID, id uint) (*models.AuditLog, error) {
	return findOwned[models.AuditLog](ctx, s.db, userID, id)
}

func (s *Store) SaveAuditLog(ctx context.Context, l *models.AuditLog) error {
	return save(ctx, s.db, l)
}

// AuditFilter narrows ListAuditLogs. Zero fields match everything.
type AuditFilter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

// ListAuditLogs returns a user's entries, newest first.
func (s *Store) ListAuditLogs(ctx context.Context, userID uint, f AuditFilter) ([]models.AuditLog, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	out := []models.AuditLog{}
	if err := q.Order("id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return out, nil
}
