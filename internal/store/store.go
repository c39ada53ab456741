// Package store is the gorm-backed persistence layer. Every entity lookup
// is scoped to its owning user; a row owned by someone else is reported as
// ErrNotFound.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to one database transaction.
// fn must only use the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func create[T any](ctx context.Context, db *gorm.DB, v *T) error {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create %T: %w", v, err)
	}
	return nil
}

func save[T any](ctx context.Context, db *gorm.DB, v *T) error {
	if err := db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("save %T: %w", v, err)
	}
	return nil
}

func findOwned[T any](ctx context.Context, db *gorm.DB, userID, id uint) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %T: %w", v, err)
	}
	return &v, nil
}

func listOwned[T any](ctx context.Context, db *gorm.DB, userID uint, order string) ([]T, error) {
	out := []T{}
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order(order).Find(&out).Error; err != nil {
		var v T
		return nil, fmt.Errorf("list %T: %w", v, err)
	}
	return out, nil
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, userID, id uint) error {
	var v T
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&v)
	if res.Error != nil {
		return fmt.Errorf("delete %T: %w", v, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteAllOwned[T any](ctx context.Context, db *gorm.DB, userID uint) error {
	var v T
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&v).Error; err != nil {
		return fmt.Errorf("delete all %T: %w", v, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
