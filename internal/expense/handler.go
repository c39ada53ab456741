package expense

import (
	"errors"
	"sort"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	UserID    *uint                   `json:"userId"`
	Name      string                  `json:"name" validate:"required,max=100"`
	Amount    decimal.Decimal         `json:"amount" validate:"gt=0"`
	Frequency finance.Frequency       `json:"frequency" validate:"required,frequency"`
	Category  finance.ExpenseCategory `json:"category" validate:"required,category"`
}

type UpdateExpenseRequest struct {
	Name      *string                  `json:"name" validate:"omitempty,min=1,max=100"`
	Amount    *decimal.Decimal         `json:"amount" validate:"omitempty,gt=0"`
	Frequency *finance.Frequency       `json:"frequency" validate:"omitempty,frequency"`
	Category  *finance.ExpenseCategory `json:"category" validate:"omitempty,category"`
	IsActive  *bool                    `json:"isActive"`
}

type CategorySummaryItem struct {
	Category finance.ExpenseCategory `json:"category"`
	Label    string                  `json:"label"`
	Count    int                     `json:"count"`
	Monthly  decimal.Decimal         `json:"monthly"`
}

type ExpenseSummaryResponse struct {
	Items        []CategorySummaryItem `json:"items"`
	TotalMonthly decimal.Decimal       `json:"totalMonthly"`
	TotalWeekly  decimal.Decimal       `json:"totalWeekly"`
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}
	return err
}

// GET /api/users/:userId/expenses
func ListExpensesHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expenses, err := svc.ListExpenses(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(expenses)
	}
}

// POST /api/expenses
func CreateExpenseHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		if err := auth.CheckOwner(c, body.UserID); err != nil {
			return err
		}

		e, err := svc.AddExpense(c.UserContext(), auth.UserID(c), state.ExpenseInput{
			Name:      body.Name,
			Amount:    body.Amount,
			Frequency: body.Frequency,
			Category:  body.Category,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// PATCH /api/expenses/:id
func UpdateExpenseHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateExpenseRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		e, err := svc.UpdateExpense(c.UserContext(), auth.UserID(c), id, state.ExpensePatch{
			Name:      body.Name,
			Amount:    body.Amount,
			Frequency: body.Frequency,
			Category:  body.Category,
			IsActive:  body.IsActive,
		})
		if err != nil {
			return notFound(err)
		}
		return c.JSON(e)
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteExpense(c.UserContext(), auth.UserID(c), id); err != nil {
			return notFound(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/users/:userId/expenses/summary
// Active expenses grouped by category, as monthly equivalents.
func ExpenseSummaryHandler(svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expenses, err := svc.ListExpenses(c.UserContext(), auth.UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(Summarize(models.ActiveExpenses(expenses)))
	}
}

// Summarize groups expenses by category, largest monthly total first.
func Summarize(expenses []models.Expense) ExpenseSummaryResponse {
	labels := map[finance.ExpenseCategory]string{}
	for _, entry := range finance.ExpenseCategories() {
		labels[entry.Value] = entry.Label
	}

	byCategory := map[finance.ExpenseCategory]*CategorySummaryItem{}
	for _, e := range expenses {
		item, ok := byCategory[e.Category]
		if !ok {
			item = &CategorySummaryItem{Category: e.Category, Label: labels[e.Category], Monthly: decimal.Zero}
			byCategory[e.Category] = item
		}
		item.Count++
		item.Monthly = item.Monthly.Add(e.Monthly)
	}

	items := make([]CategorySummaryItem, 0, len(byCategory))
	for _, item := range byCategory {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Monthly.Cmp(items[j].Monthly); c != 0 {
			return c > 0
		}
		return items[i].Category < items[j].Category
	})

	total := finance.TotalMonthly(expenses)
	return ExpenseSummaryResponse{
		Items:        items,
		TotalMonthly: total,
		TotalWeekly:  finance.PeriodExpenses(total, finance.PeriodWeek).Round(2),
	}
}
