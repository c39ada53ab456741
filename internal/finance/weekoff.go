package finance

import "github.com/shopspring/decimal"

const (
	// DailySpending is the assumed living cost per day off. It is not
	// derived from expense data.
	DailySpending = 140
	WeekOffDays   = 7
)

// MonthlyCost is anything carrying a cached monthly-equivalent amount.
type MonthlyCost interface {
	MonthlyAmount() decimal.Decimal
}

// Monthly is a bare monthly figure, handy when no expense record exists.
type Monthly decimal.Decimal

func (m Monthly) MonthlyAmount() decimal.Decimal { return decimal.Decimal(m) }

// TotalMonthly sums the monthly-equivalent amounts of expenses.
func TotalMonthly[E MonthlyCost](expenses []E) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.MonthlyAmount())
	}
	return total
}

type WeekOffResult struct {
	WeeklyExpenses decimal.Decimal `json:"weeklyExpenses"`
	DailySpending  decimal.Decimal `json:"dailySpending"`
	TotalNeeded    decimal.Decimal `json:"totalNeeded"`
	CanTakeOff     bool            `json:"canTakeOff"`
	Shortfall      decimal.Decimal `json:"shortfall"`
}

// CalculateWeekOff reports whether availableCash covers seven days without
// work: one week of the given expenses plus DailySpending for each day.
func CalculateWeekOff[E MonthlyCost](expenses []E, availableCash decimal.Decimal) WeekOffResult {
	weekly := Round(TotalMonthly(expenses).Div(WeeksPerMonth))
	daily := decimal.NewFromInt(DailySpending)
	needed := weekly.Add(daily.Mul(decimal.NewFromInt(WeekOffDays)))

	res := WeekOffResult{
		WeeklyExpenses: weekly,
		DailySpending:  daily,
		TotalNeeded:    needed,
		CanTakeOff:     availableCash.GreaterThanOrEqual(needed),
		Shortfall:      decimal.Zero,
	}
	if !res.CanTakeOff {
		res.Shortfall = needed.Sub(availableCash)
	}
	return res
}
