package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func monthlies(values ...string) []Monthly {
	out := make([]Monthly, 0, len(values))
	for _, v := range values {
		out = append(out, Monthly(dec(v)))
	}
	return out
}

func TestCalculateWeekOff(t *testing.T) {
	t.Run("shortfall when cash is below the need", func(t *testing.T) {
		// round(1300 / 4.33) = 300; 300 + 140*7 = 1280
		res := CalculateWeekOff(monthlies("1300"), dec("1200"))

		if !res.WeeklyExpenses.Equal(dec("300")) {
			t.Errorf("WeeklyExpenses = %s, want 300", res.WeeklyExpenses)
		}
		if !res.DailySpending.Equal(dec("140")) {
			t.Errorf("DailySpending = %s, want 140", res.DailySpending)
		}
		if !res.TotalNeeded.Equal(dec("1280")) {
			t.Errorf("TotalNeeded = %s, want 1280", res.TotalNeeded)
		}
		if res.CanTakeOff {
			t.Error("CanTakeOff = true, want false")
		}
		if !res.Shortfall.Equal(dec("80")) {
			t.Errorf("Shortfall = %s, want 80", res.Shortfall)
		}
	})

	t.Run("empty expenses need only daily spending", func(t *testing.T) {
		res := CalculateWeekOff([]Monthly{}, dec("0"))
		if !res.WeeklyExpenses.IsZero() {
			t.Errorf("WeeklyExpenses = %s, want 0", res.WeeklyExpenses)
		}
		if !res.TotalNeeded.Equal(dec("980")) {
			t.Errorf("TotalNeeded = %s, want 980", res.TotalNeeded)
		}
		if !res.Shortfall.Equal(dec("980")) {
			t.Errorf("Shortfall = %s, want 980", res.Shortfall)
		}
	})

	t.Run("exact boundary is affordable", func(t *testing.T) {
		res := CalculateWeekOff(monthlies("1300"), dec("1280"))
		if !res.CanTakeOff {
			t.Error("CanTakeOff = false at cash == totalNeeded")
		}
		if !res.Shortfall.IsZero() {
			t.Errorf("Shortfall = %s, want 0", res.Shortfall)
		}

		below := CalculateWeekOff(monthlies("1300"), dec("1279.99"))
		if below.CanTakeOff {
			t.Error("CanTakeOff = true just below totalNeeded")
		}
	})

	t.Run("mixed expenses are summed", func(t *testing.T) {
		// 433 + 500 = 933; 933 / 4.33 = 215.47 -> 215
		res := CalculateWeekOff(monthlies("433", "500"), dec("5000"))
		if !res.WeeklyExpenses.Equal(dec("215")) {
			t.Errorf("WeeklyExpenses = %s, want 215", res.WeeklyExpenses)
		}
		if !res.CanTakeOff {
			t.Error("CanTakeOff = false, want true")
		}
	})
}

func TestCalculateWeekOffMonotonicInCash(t *testing.T) {
	expenses := monthlies("1300", "250.75", "99.99")

	wasAffordable := false
	for cash := int64(0); cash <= 3000; cash += 7 {
		res := CalculateWeekOff(expenses, decimal.NewFromInt(cash))
		if wasAffordable && !res.CanTakeOff {
			t.Fatalf("CanTakeOff flipped back to false at cash=%d", cash)
		}
		wasAffordable = res.CanTakeOff
	}
	if !wasAffordable {
		t.Fatal("expected the week off to become affordable")
	}
}
