package paystructure

import (
	"errors"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreatePayStructureRequest struct {
	UserID      *uint           `json:"userId"`
	PayType     finance.PayType `json:"payType" validate:"required,paytype"`
	Rate        decimal.Decimal `json:"rate" validate:"gt=0"`
	Description string          `json:"description" validate:"max=255"`
}

type UpdatePayStructureRequest struct {
	PayType     *finance.PayType `json:"payType" validate:"omitempty,paytype"`
	Rate        *decimal.Decimal `json:"rate" validate:"omitempty,gt=0"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	IsActive    *bool            `json:"isActive"`
}

type ToggleRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Pay structure not found")
	}
	return err
}

// GET /api/users/:userId/pay-structures
func ListPayStructuresHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rates, err := svc.ListPayRates(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(rates)
	}
}

// POST /api/pay-structures
func CreatePayStructureHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePayStructureRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		if err := auth.CheckOwner(c, body.UserID); err != nil {
			return err
		}

		p, err := svc.AddPayRate(c.UserContext(), auth.UserID(c), state.PayRateInput{
			PayType:     body.PayType,
			Rate:        body.Rate,
			Description: body.Description,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PATCH /api/pay-structures/:id
func UpdatePayStructureHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdatePayStructureRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		p, err := svc.UpdatePayRate(c.UserContext(), auth.UserID(c), id, state.PayRatePatch{
			PayType:     body.PayType,
			Rate:        body.Rate,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			return notFound(err)
		}
		return c.JSON(p)
	}
}

// PATCH /api/pay-structures/:id/toggle
func TogglePayStructureHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body ToggleRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		p, err := svc.TogglePayRate(c.UserContext(), auth.UserID(c), id, *body.IsActive)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(p)
	}
}

// DELETE /api/pay-structures/:id
func DeletePayStructureHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeletePayRate(c.UserContext(), auth.UserID(c), id); err != nil {
			return notFound(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
