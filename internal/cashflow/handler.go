package cashflow

import (
	"sort"
	"time"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MonthlySummaryItem struct {
	Source  models.CashSource `json:"source"`
	Count   int               `json:"count"`
	Credits decimal.Decimal   `json:"credits"`
	Debits  decimal.Decimal   `json:"debits"`
	Net     decimal.Decimal   `json:"net"`
}

type MonthlySummaryResponse struct {
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	Items          []MonthlySummaryItem `json:"items"`
	GrandTotal     decimal.Decimal      `json:"grandTotal"`
	ClosingBalance *decimal.Decimal     `json:"closingBalance"`
}

// dateQuery parses an optional date query parameter. A bare date used as an
// upper bound covers the whole day.
func dateQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a date (YYYY-MM-DD)")
	}
	if endOfDay && len(s) == len(time.DateOnly) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// -------------------------------------------------
// GET /api/users/:userId/cash-adjustments?from=2025-03-01&to=2025-03-31
// -------------------------------------------------
func ListCashAdjustmentsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := dateQuery(c, "from", false)
		if err != nil {
			return err
		}
		to, err := dateQuery(c, "to", true)
		if err != nil {
			return err
		}
		if from != nil && to != nil && to.Before(*from) {
			return fiber.NewError(fiber.StatusBadRequest, "to must not be before from")
		}

		adjs, err := st.ListCashAdjustments(c.UserContext(), auth.UserID(c), from, to)
		if err != nil {
			return err
		}
		return c.JSON(adjs)
	}
}

// -------------------------------------------------
// GET /api/users/:userId/cash-adjustments/summary/monthly?year=2025&month=3
// -------------------------------------------------
func MonthlySummaryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("year") == "" || c.Query("month") == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year and month are required")
		}
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid year")
		}
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid month")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

		adjs, err := st.ListCashAdjustments(c.UserContext(), auth.UserID(c), &start, &end)
		if err != nil {
			return err
		}
		return c.JSON(Summarize(year, month, adjs))
	}
}

// Summarize totals adjustments by source. adjs must be in date order; the
// last balance is the month's closing balance.
func Summarize(year, month int, adjs []models.CashAdjustment) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{
		Year:       year,
		Month:      month,
		Items:      []MonthlySummaryItem{},
		GrandTotal: decimal.Zero,
	}

	bySource := map[models.CashSource]*MonthlySummaryItem{}
	for _, a := range adjs {
		item, ok := bySource[a.Source]
		if !ok {
			item = &MonthlySummaryItem{Source: a.Source, Credits: decimal.Zero, Debits: decimal.Zero, Net: decimal.Zero}
			bySource[a.Source] = item
		}
		item.Count++
		if a.Amount.IsNegative() {
			item.Debits = item.Debits.Add(a.Amount.Neg())
		} else {
			item.Credits = item.Credits.Add(a.Amount)
		}
		item.Net = item.Net.Add(a.Amount)
		resp.GrandTotal = resp.GrandTotal.Add(a.Amount)
	}

	for _, item := range bySource {
		resp.Items = append(resp.Items, *item)
	}
	sort.Slice(resp.Items, func(i, j int) bool { return resp.Items[i].Source < resp.Items[j].Source })

	if n := len(adjs); n > 0 {
		closing := adjs[n-1].Balance
		resp.ClosingBalance = &closing
	}
	return resp
}
