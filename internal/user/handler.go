package user

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

type UpdateCashRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

type UpdateSettingsRequest struct {
	HideIncome *bool `json:"hideIncome" validate:"required"`
}

type SetRoleRequest struct {
	Role finance.Role `json:"role" validate:"required,role"`
}

type TaxSettingsRequest struct {
	FederalTaxRate       decimal.Decimal  `json:"federalTaxRate" validate:"gte=0,lte=100"`
	SocialSecurityRate   decimal.Decimal  `json:"socialSecurityRate" validate:"gte=0,lte=100"`
	MedicareRate         decimal.Decimal  `json:"medicareRate" validate:"gte=0,lte=100"`
	StateCode            string           `json:"stateCode" validate:"omitempty,statecode"`
	SelfEmploymentTax    *decimal.Decimal `json:"selfEmploymentTax" validate:"omitempty,gte=0,lte=100"`
	UseStandardDeduction bool             `json:"useStandardDeduction"`
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return err
}

// GET /api/users/:id
func GetUserHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetUser(c.UserContext(), auth.UserID(c))
		if err != nil {
			return notFound(err)
		}
		return c.JSON(u)
	}
}

// GET /api/users/:userId/state
func GetStateHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Snapshot(c.UserContext(), auth.UserID(c))
		if err != nil {
			return notFound(err)
		}
		return c.JSON(snap)
	}
}

// POST /api/users/:userId/reset
func ResetHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Reset(c.UserContext(), auth.UserID(c))
		if err != nil {
			return notFound(err)
		}
		return c.JSON(snap)
	}
}

// PATCH /api/users/:id/cash
// amount is signed and added to the current balance.
func UpdateCashHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateCashRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		u, err := svc.UpdateCash(c.UserContext(), auth.UserID(c), *body.Amount)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(u)
	}
}

// PATCH /api/users/:id/settings
func UpdateSettingsHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateSettingsRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		u, err := svc.UpdateSettings(c.UserContext(), auth.UserID(c), *body.HideIncome)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(u)
	}
}

// PATCH /api/users/:id/role
func SetRoleHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetRoleRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		u, err := svc.SetRole(c.UserContext(), auth.UserID(c), body.Role)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(u)
	}
}

// GET /api/users/:userId/tax-settings
func GetTaxSettingsHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := svc.TaxSettings(c.UserContext(), auth.UserID(c))
		if err != nil {
			return notFound(err)
		}
		return c.JSON(t)
	}
}

// PUT /api/users/:userId/tax-settings
func SaveTaxSettingsHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TaxSettingsRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		t, err := svc.SaveTaxSettings(c.UserContext(), auth.UserID(c), state.TaxSettingsInput{
			FederalTaxRate:       body.FederalTaxRate,
			SocialSecurityRate:   body.SocialSecurityRate,
			MedicareRate:         body.MedicareRate,
			StateCode:            body.StateCode,
			SelfEmploymentTax:    body.SelfEmploymentTax,
			UseStandardDeduction: body.UseStandardDeduction,
		})
		if err != nil {
			return notFound(err)
		}
		return c.JSON(t)
	}
}

// GET /api/users/:userId/tax-estimate?amount=1000
func TaxEstimateHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		amount, err := decimal.NewFromString(c.Query("amount"))
		if err != nil || amount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be a non-negative number")
		}
		est, err := svc.EstimateTax(c.UserContext(), auth.UserID(c), amount)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(est)
	}
}
