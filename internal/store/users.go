package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	var count int64
	if err := s.conn(ctx).Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if err := s.conn(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// IncrementCash adds amount (signed) to the user's available cash and
// returns the updated user. The row is locked for the read-add-write so
// concurrent credits serialize and the sum stays exact.
func (s *Store) IncrementCash(ctx context.Context, userID uint, amount decimal.Decimal) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		u.AvailableCash = u.AvailableCash.Add(amount)
		if err := tx.Model(&u).Update("available_cash", u.AvailableCash).Error; err != nil {
			return fmt.Errorf("increment cash: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser writes the given columns of a user row.
func (s *Store) UpdateUser(ctx context.Context, userID uint, fields map[string]any) (*models.User, error) {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, userID)
}

// DeleteUserData removes everything a user owns except the user row and
// the audit trail.
func (s *Store) DeleteUserData(ctx context.Context, userID uint) error {
	db := s.conn(ctx)
	for _, fn := range []func(context.Context, *gorm.DB, uint) error{
		deleteAllOwned[models.Expense],
		deleteAllOwned[models.Goal],
		deleteAllOwned[models.IncomeLog],
		deleteAllOwned[models.PayStructure],
		deleteAllOwned[models.TaxSettings],
		deleteAllOwned[models.CashAdjustment],
	} {
		if err := fn(ctx, db, userID); err != nil {
			return err
		}
	}
	return nil
}
