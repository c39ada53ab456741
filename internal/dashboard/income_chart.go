package dashboard

import (
	"time"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	maxChartCount = 366
)

type IncomeChartPoint struct {
	Label  string          `json:"label"` // day, week start (Monday) or month start
	Income decimal.Decimal `json:"income"`
	Miles  int             `json:"miles"`
	Loads  int             `json:"loads"`
	Logs   int             `json:"logs"`
}

type IncomeChartTotals struct {
	Income decimal.Decimal `json:"income"`
	Miles  int             `json:"miles"`
	Loads  int             `json:"loads"`
	Logs   int             `json:"logs"`
}

type IncomeChartResponse struct {
	Period      string             `json:"period"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	Points      []IncomeChartPoint `json:"points"`
	GrandTotals IncomeChartTotals  `json:"grandTotals"`
}

func defaultCount(period string) int {
	switch period {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	default:
		return 7
	}
}

// bucketStart truncates t to the start of its day, Monday-based week or
// month, in UTC.
func bucketStart(period string, t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func nextBucket(period string, t time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// ChartRange returns [start, end) covering count buckets that end with the
// bucket containing now.
func ChartRange(period string, count int, now time.Time) (time.Time, time.Time) {
	current := bucketStart(period, now)
	end := nextBucket(period, current)
	var start time.Time
	switch period {
	case PeriodWeekly:
		start = current.AddDate(0, 0, -7*(count-1))
	case PeriodMonthly:
		start = current.AddDate(0, -(count - 1), 0)
	default:
		start = current.AddDate(0, 0, -(count - 1))
	}
	return start, end
}

// BuildIncomeChart buckets logs into count consecutive periods ending now.
// Empty buckets are reported with zero totals; logs outside the range are
// ignored.
func BuildIncomeChart(period string, count int, now time.Time, logs []models.IncomeLog) IncomeChartResponse {
	start, end := ChartRange(period, count, now)

	points := make([]IncomeChartPoint, 0, count)
	index := make(map[time.Time]int, count)
	for b := start; b.Before(end); b = nextBucket(period, b) {
		index[b] = len(points)
		points = append(points, IncomeChartPoint{Label: b.Format(time.DateOnly), Income: decimal.Zero})
	}

	grand := IncomeChartTotals{Income: decimal.Zero}
	for _, l := range logs {
		i, ok := index[bucketStart(period, l.Date)]
		if !ok {
			continue
		}
		p := &points[i]
		p.Income = p.Income.Add(l.Income)
		p.Logs++
		grand.Income = grand.Income.Add(l.Income)
		grand.Logs++
		if l.Miles != nil {
			p.Miles += *l.Miles
			grand.Miles += *l.Miles
		}
		if l.Loads != nil {
			p.Loads += *l.Loads
			grand.Loads += *l.Loads
		}
	}

	return IncomeChartResponse{
		Period:      period,
		From:        start.Format(time.DateOnly),
		To:          end.AddDate(0, 0, -1).Format(time.DateOnly),
		Points:      points,
		GrandTotals: grand,
	}
}

// GET /api/users/:userId/dashboard/income-chart?period=daily&count=7
func IncomeChartHandler(st *store.Store, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", PeriodDaily)
		switch period {
		case PeriodDaily, PeriodWeekly, PeriodMonthly:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "period must be one of [daily weekly monthly]")
		}

		count := defaultCount(period)
		if c.Query("count") != "" {
			count = c.QueryInt("count")
			if count <= 0 || count > maxChartCount {
				return fiber.NewError(fiber.StatusBadRequest, "count must be between 1 and 366")
			}
		}

		at := now()
		start, end := ChartRange(period, count, at)
		logs, err := st.ListIncomeLogsBetween(c.UserContext(), auth.UserID(c), start, end)
		if err != nil {
			return err
		}
		return c.JSON(BuildIncomeChart(period, count, at, logs))
	}
}
