package finance

import "github.com/shopspring/decimal"

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is day, week or month.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

var (
	// GoalsAllocationRate is the share of any income set aside for goals.
	GoalsAllocationRate = decimal.RequireFromString("0.15")

	// DefaultWeekOffGoalAmount is the target of the seeded "Take a Week
	// Off" goal and the default reference for WhatIfResult.WeekOffProgress.
	DefaultWeekOffGoalAmount = decimal.NewFromInt(980)
)

type WhatIfResult struct {
	Expenses        decimal.Decimal `json:"expenses"`
	Goals           decimal.Decimal `json:"goals"`
	Remaining       decimal.Decimal `json:"remaining"`
	WeekOffProgress decimal.Decimal `json:"weekOffProgress"`
}

// PeriodExpenses scales a monthly total down to period. Unknown periods
// yield zero.
func PeriodExpenses(totalMonthly decimal.Decimal, period Period) decimal.Decimal {
	switch period {
	case PeriodDay:
		return totalMonthly.Div(DaysPerMonth)
	case PeriodWeek:
		return totalMonthly.Div(WeeksPerMonth)
	case PeriodMonth:
		return totalMonthly
	default:
		return decimal.Zero
	}
}

// CalculateWhatIf projects how amount, earned over period, splits between
// the period's share of expenses, the fixed goals allocation and what is
// left. WeekOffProgress is the goals allocation as a percentage of
// referenceGoal; it is not capped at 100 and is zero when referenceGoal is
// not positive.
func CalculateWhatIf[E MonthlyCost](amount decimal.Decimal, period Period, expenses []E, referenceGoal decimal.Decimal) WhatIfResult {
	periodExpenses := PeriodExpenses(TotalMonthly(expenses), period)
	goals := amount.Mul(GoalsAllocationRate)

	remaining := amount.Sub(periodExpenses).Sub(goals)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progress := decimal.Zero
	if referenceGoal.IsPositive() {
		progress = goals.Div(referenceGoal).Mul(percentFactor)
	}

	return WhatIfResult{
		Expenses:        periodExpenses,
		Goals:           goals,
		Remaining:       remaining,
		WeekOffProgress: progress,
	}
}
