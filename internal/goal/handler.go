package goal

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

type CreateGoalRequest struct {
	UserID   *uint            `json:"userId"`
	Name     string           `json:"name" validate:"required,max=100"`
	Amount   decimal.Decimal  `json:"amount" validate:"gt=0"`
	Deadline *validation.Date `json:"deadline"`
	Priority *int             `json:"priority" validate:"omitempty,gte=1"`
}

type UpdateGoalRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Amount        *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Deadline      *validation.Date `json:"deadline"`
	ClearDeadline bool             `json:"clearDeadline"`
	Priority      *int             `json:"priority" validate:"omitempty,gte=1"`
	IsActive      *bool            `json:"isActive"`
}

type UpdateProgressRequest struct {
	Saved *decimal.Decimal `json:"saved" validate:"required,gte=0"`
}

// GoalResponse reports progress clamped to 0..100 for display next to the
// stored, uncapped value.
type GoalResponse struct {
	models.Goal
	DisplayProgress int `json:"displayProgress"`
}

func toResponse(g models.Goal) GoalResponse {
	return GoalResponse{Goal: g, DisplayProgress: g.DisplayProgress()}
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Goal not found")
	}
	return err
}

// GET /api/users/:userId/goals
func ListGoalsHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		goals, err := svc.ListGoals(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		resp := make([]GoalResponse, 0, len(goals))
		for _, g := range goals {
			resp = append(resp, toResponse(g))
		}
		return c.JSON(resp)
	}
}

// POST /api/goals
func CreateGoalHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGoalRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		if err := auth.CheckOwner(c, body.UserID); err != nil {
			return err
		}

		g, err := svc.AddGoal(c.UserContext(), auth.UserID(c), state.GoalInput{
			Name:     body.Name,
			Amount:   body.Amount,
			Deadline: body.Deadline.Ptr(),
			Priority: body.Priority,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*g))
	}
}

// PATCH /api/goals/:id
func UpdateGoalHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateGoalRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		g, err := svc.UpdateGoal(c.UserContext(), auth.UserID(c), id, state.GoalPatch{
			Name:          body.Name,
			Amount:        body.Amount,
			Deadline:      body.Deadline.Ptr(),
			ClearDeadline: body.ClearDeadline,
			Priority:      body.Priority,
			IsActive:      body.IsActive,
		})
		if err != nil {
			return notFound(err)
		}
		return c.JSON(toResponse(*g))
	}
}

// PATCH /api/goals/:id/progress
func UpdateProgressHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateProgressRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		g, err := svc.UpdateGoalProgress(c.UserContext(), auth.UserID(c), id, *body.Saved)
		if err != nil {
			return notFound(err)
		}
		return c.JSON(toResponse(*g))
	}
}
