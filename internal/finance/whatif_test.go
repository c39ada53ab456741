package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateWhatIf(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		period        Period
		expenses      []Monthly
		wantExpenses  string
		wantGoals     string
		wantRemaining string
		wantProgress  string // rounded to 2 places
	}{
		{
			name:          "monthly income below expenses clamps remaining",
			amount:        "1000",
			period:        PeriodMonth,
			expenses:      monthlies("3000"),
			wantExpenses:  "3000",
			wantGoals:     "150",
			wantRemaining: "0",
			wantProgress:  "15.31",
		},
		{
			name:          "daily scales expenses by 30",
			amount:        "400",
			period:        PeriodDay,
			expenses:      monthlies("3000"),
			wantExpenses:  "100",
			wantGoals:     "60",
			wantRemaining: "240",
			wantProgress:  "6.12",
		},
		{
			name:          "weekly scales expenses by 4.33",
			amount:        "2000",
			period:        PeriodWeek,
			expenses:      monthlies("4330"),
			wantExpenses:  "1000",
			wantGoals:     "300",
			wantRemaining: "700",
			wantProgress:  "30.61",
		},
		{
			name:          "no expenses",
			amount:        "100",
			period:        PeriodMonth,
			expenses:      nil,
			wantExpenses:  "0",
			wantGoals:     "15",
			wantRemaining: "85",
			wantProgress:  "1.53",
		},
		{
			name:          "unknown period has no expense share",
			amount:        "100",
			period:        Period("year"),
			expenses:      monthlies("3000"),
			wantExpenses:  "0",
			wantGoals:     "15",
			wantRemaining: "85",
			wantProgress:  "1.53",
		},
		{
			name:          "progress can exceed 100",
			amount:        "10000",
			period:        PeriodMonth,
			expenses:      nil,
			wantExpenses:  "0",
			wantGoals:     "1500",
			wantRemaining: "8500",
			wantProgress:  "153.06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateWhatIf(dec(tt.amount), tt.period, tt.expenses, DefaultWeekOffGoalAmount)

			if !res.Expenses.Equal(dec(tt.wantExpenses)) {
				t.Errorf("Expenses = %s, want %s", res.Expenses, tt.wantExpenses)
			}
			if !res.Goals.Equal(dec(tt.wantGoals)) {
				t.Errorf("Goals = %s, want %s", res.Goals, tt.wantGoals)
			}
			if !res.Remaining.Equal(dec(tt.wantRemaining)) {
				t.Errorf("Remaining = %s, want %s", res.Remaining, tt.wantRemaining)
			}
			if got := res.WeekOffProgress.Round(2); !got.Equal(dec(tt.wantProgress)) {
				t.Errorf("WeekOffProgress = %s, want %s", got, tt.wantProgress)
			}
		})
	}
}

func TestCalculateWhatIfInvariants(t *testing.T) {
	expenseSets := [][]Monthly{
		nil,
		monthlies("10"),
		monthlies("3000", "1200.50"),
		monthlies("999999"),
	}
	amounts := []string{"0", "1", "150.25", "1000", "25000"}

	for _, period := range []Period{PeriodDay, PeriodWeek, PeriodMonth} {
		for _, expenses := range expenseSets {
			for _, a := range amounts {
				amount := dec(a)
				res := CalculateWhatIf(amount, period, expenses, DefaultWeekOffGoalAmount)

				if res.Remaining.IsNegative() {
					t.Errorf("%s/%s: Remaining = %s is negative", period, a, res.Remaining)
				}
				if want := amount.Mul(dec("0.15")); !res.Goals.Equal(want) {
					t.Errorf("%s/%s: Goals = %s, want %s", period, a, res.Goals, want)
				}
			}
		}
	}
}

func TestCalculateWhatIfReferenceGoal(t *testing.T) {
	res := CalculateWhatIf(dec("1000"), PeriodMonth, []Monthly{}, dec("1500"))
	if !res.WeekOffProgress.Equal(dec("10")) {
		t.Errorf("WeekOffProgress = %s, want 10", res.WeekOffProgress)
	}

	res = CalculateWhatIf(dec("1000"), PeriodMonth, []Monthly{}, decimal.Zero)
	if !res.WeekOffProgress.IsZero() {
		t.Errorf("WeekOffProgress = %s, want 0 for a zero reference", res.WeekOffProgress)
	}
}
