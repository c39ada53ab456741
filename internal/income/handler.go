package income

import (
	"errors"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LogActivityRequest struct {
	UserID *uint            `json:"userId"`
	Date   *validation.Date `json:"date"`
	Miles  *int             `json:"miles" validate:"omitempty,gte=0"`
	Loads  *int             `json:"loads" validate:"omitempty,gte=0"`
	Hours  *decimal.Decimal `json:"hours" validate:"omitempty,gte=0,lte=24"`
	Income *decimal.Decimal `json:"income" validate:"required,gte=0"`
	Notes  string           `json:"notes" validate:"max=500"`
}

type UpdateIncomeLogRequest struct {
	Date   *validation.Date `json:"date"`
	Miles  *int             `json:"miles" validate:"omitempty,gte=0"`
	Loads  *int             `json:"loads" validate:"omitempty,gte=0"`
	Hours  *decimal.Decimal `json:"hours" validate:"omitempty,gte=0,lte=24"`
	Income *decimal.Decimal `json:"income" validate:"omitempty,gte=0"`
	Notes  *string          `json:"notes" validate:"omitempty,max=500"`
}

// LogActivityResponse carries the new log and the cash balance it produced.
type LogActivityResponse struct {
	Log           *models.IncomeLog `json:"log"`
	AvailableCash decimal.Decimal   `json:"availableCash"`
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Income log not found")
	}
	return err
}

// GET /api/users/:userId/income-logs
func ListIncomeLogsHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := svc.ListIncomeLogs(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}

// POST /api/income-logs
// Records a day's activity and credits its income to available cash.
func LogActivityHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LogActivityRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		if err := auth.CheckOwner(c, body.UserID); err != nil {
			return err
		}

		log, user, err := svc.LogDailyActivity(c.UserContext(), auth.UserID(c), state.ActivityInput{
			Date:   body.Date.Ptr(),
			Miles:  body.Miles,
			Loads:  body.Loads,
			Hours:  body.Hours,
			Income: *body.Income,
			Notes:  body.Notes,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(LogActivityResponse{Log: log, AvailableCash: user.AvailableCash})
	}
}

// PATCH /api/income-logs/:id
func UpdateIncomeLogHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateIncomeLogRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		log, err := svc.UpdateIncomeLog(c.UserContext(), auth.UserID(c), id, state.IncomeLogPatch{
			Date:   body.Date.Ptr(),
			Miles:  body.Miles,
			Loads:  body.Loads,
			Hours:  body.Hours,
			Income: body.Income,
			Notes:  body.Notes,
		})
		if err != nil {
			return notFound(err)
		}
		return c.JSON(log)
	}
}

// DELETE /api/income-logs/:id
func DeleteIncomeLogHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteIncomeLog(c.UserContext(), auth.UserID(c), id); err != nil {
			return notFound(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
