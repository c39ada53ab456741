package dashboard

import (
	"time"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SummaryResponse is the dashboard header. Income figures are always
// returned; HideIncome only tells the client to mask them.
type SummaryResponse struct {
	AvailableCash    decimal.Decimal       `json:"availableCash"`
	MonthlyExpenses  decimal.Decimal       `json:"monthlyExpenses"`
	WeeklyExpenses   decimal.Decimal       `json:"weeklyExpenses"`
	IncomeLast7Days  decimal.Decimal       `json:"incomeLast7Days"`
	IncomeLast30Days decimal.Decimal       `json:"incomeLast30Days"`
	ActiveGoals      int                   `json:"activeGoals"`
	HideIncome       bool                  `json:"hideIncome"`
	WeekOff          finance.WeekOffResult `json:"weekOff"`
}

// Summarize builds the dashboard header. logs should cover at least the
// 30 days before now.
func Summarize(user *models.User, expenses []models.Expense, goals []models.Goal, logs []models.IncomeLog, now time.Time) SummaryResponse {
	active := models.ActiveExpenses(expenses)
	monthly := finance.TotalMonthly(active)

	resp := SummaryResponse{
		AvailableCash:    user.AvailableCash,
		MonthlyExpenses:  monthly,
		WeeklyExpenses:   finance.PeriodExpenses(monthly, finance.PeriodWeek).Round(2),
		IncomeLast7Days:  decimal.Zero,
		IncomeLast30Days: decimal.Zero,
		HideIncome:       user.HideIncome,
		WeekOff:          finance.CalculateWeekOff(active, user.AvailableCash),
	}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	for _, l := range logs {
		if l.Date.After(now) {
			continue
		}
		if !l.Date.Before(monthAgo) {
			resp.IncomeLast30Days = resp.IncomeLast30Days.Add(l.Income)
		}
		if !l.Date.Before(weekAgo) {
			resp.IncomeLast7Days = resp.IncomeLast7Days.Add(l.Income)
		}
	}

	for _, g := range goals {
		if g.IsActive {
			resp.ActiveGoals++
		}
	}
	return resp
}

// GET /api/users/:userId/dashboard/summary
func SummaryHandler(st *store.Store, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		userID := auth.UserID(c)
		at := now()

		user, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		expenses, err := st.ListExpenses(ctx, userID)
		if err != nil {
			return err
		}
		goals, err := st.ListGoals(ctx, userID)
		if err != nil {
			return err
		}
		logs, err := st.ListIncomeLogsBetween(ctx, userID, at.AddDate(0, 0, -30), at.Add(time.Nanosecond))
		if err != nil {
			return err
		}

		return c.JSON(Summarize(user, expenses, goals, logs, at))
	}
}
