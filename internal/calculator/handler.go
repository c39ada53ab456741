package calculator

import (
	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WhatIfRequest struct {
	Amount              decimal.Decimal  `json:"amount" validate:"gte=0"`
	Period              finance.Period   `json:"period" validate:"required,period"`
	ReferenceGoalAmount *decimal.Decimal `json:"referenceGoalAmount" validate:"omitempty,gt=0"`
}

type CatalogResponse struct {
	Role          finance.Role                                    `json:"role,omitempty"`
	Categories    []finance.CatalogEntry[finance.ExpenseCategory] `json:"categories"`
	PayTypes      []finance.CatalogEntry[finance.PayType]         `json:"payTypes"`
	Frequencies   []finance.Frequency                             `json:"frequencies"`
	StateTaxRates []finance.StateTax                              `json:"stateTaxRates"`
}

// GET /api/users/:userId/week-off
func WeekOffHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.WeekOff(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// POST /api/users/:userId/what-if
func WhatIfHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WhatIfRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		ref := finance.DefaultWeekOffGoalAmount
		if body.ReferenceGoalAmount != nil {
			ref = *body.ReferenceGoalAmount
		}

		res, err := svc.WhatIf(c.UserContext(), auth.UserID(c), body.Amount, body.Period, ref)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/catalog?role=owner
// Expense categories and pay types offered to a role; all of them when no
// role is given.
func CatalogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := finance.Role(c.Query("role"))
		if role != "" && !role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "role must be one of [company owner]")
		}
		return c.JSON(CatalogResponse{
			Role:          role,
			Categories:    finance.CategoriesFor(role),
			PayTypes:      finance.PayTypesFor(role),
			Frequencies:   finance.Frequencies(),
			StateTaxRates: finance.StateTaxes(),
		})
	}
}
