package state

import (
	"context"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

type PayRateInput struct {
	PayType     finance.PayType
	Rate        decimal.Decimal
	Description string
}

type PayRatePatch struct {
	PayType     *finance.PayType
	Rate        *decimal.Decimal
	Description *string
	IsActive    *bool
}

func (s *Service) ListPayRates(ctx context.Context, userID uint) ([]models.PayStructure, error) {
	return s.store.ListPayStructures(ctx, userID)
}

// AddPayRate stores a new, active pay structure.
func (s *Service) AddPayRate(ctx context.Context, userID uint, in PayRateInput) (*models.PayStructure, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	p := &models.PayStructure{
		UserID:      userID,
		PayType:     in.PayType,
		Rate:        in.Rate,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.store.CreatePayStructure(ctx, p); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityPayStructure, EntityID: p.ID, Action: models.AuditActionCreate, Description: "pay rate added: " + string(p.PayType), After: p})
	return p, nil
}

func (s *Service) UpdatePayRate(ctx context.Context, userID, id uint, patch PayRatePatch) (*models.PayStructure, error) {
	p, err := s.store.GetPayStructure(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *p

	if patch.PayType != nil {
		p.PayType = *patch.PayType
	}
	if patch.Rate != nil {
		p.Rate = *patch.Rate
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}

	if err := s.store.SavePayStructure(ctx, p); err != nil {
		return nil, err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityPayStructure, EntityID: id, Action: models.AuditActionUpdate, Description: "pay rate updated: " + string(p.PayType), Before: &before, After: p})
	return p, nil
}

func (s *Service) TogglePayRate(ctx context.Context, userID, id uint, active bool) (*models.PayStructure, error) {
	return s.UpdatePayRate(ctx, userID, id, PayRatePatch{IsActive: &active})
}

func (s *Service) DeletePayRate(ctx context.Context, userID, id uint) error {
	p, err := s.store.GetPayStructure(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeletePayStructure(ctx, userID, id); err != nil {
		return err
	}
	s.emit(ctx, Event{UserID: userID, EntityType: EntityPayStructure, EntityID: id, Action: models.AuditActionDelete, Description: "pay rate deleted: " + string(p.PayType), Before: p})
	return nil
}
