// Package finance holds the pure calculations behind the dashboard:
// monthly normalisation of expenses, the week-off affordability check,
// the what-if income allocation, goal progress and tax estimates.
//
// Nothing in this package performs I/O or keeps state; every function may
// be called concurrently.
package finance

import "github.com/shopspring/decimal"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Fixed conversion constants; not calendar aware.
var (
	DaysPerMonth   = decimal.NewFromInt(30)
	WeeksPerMonth  = decimal.RequireFromString("4.33")
	MonthsPerYear  = decimal.NewFromInt(12)
	percentFactor  = decimal.NewFromInt(100)
	roundingOffset = decimal.RequireFromString("0.5")
)

// Frequencies lists the accepted recurrence values in ascending length.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly}
}

// Valid reports whether f is one of Frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Normalize converts amount, recurring at frequency f, to its monthly
// equivalent. An unrecognised frequency yields zero rather than an error so
// display paths never fail; negative amounts are passed through unchanged.
func Normalize(amount decimal.Decimal, f Frequency) decimal.Decimal {
	switch f {
	case FrequencyDaily:
		return amount.Mul(DaysPerMonth)
	case FrequencyWeekly:
		return amount.Mul(WeeksPerMonth)
	case FrequencyMonthly:
		return amount
	case FrequencyYearly:
		return amount.Div(MonthsPerYear)
	default:
		return decimal.Zero
	}
}

// Round rounds half up towards positive infinity, so Round(2.5) == 3 and
// Round(-2.5) == -2.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Add(roundingOffset).Floor()
}
