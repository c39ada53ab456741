package dashboard

import (
	"testing"
	"time"

	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Wednesday.
var now = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func intPtr(i int) *int { return &i }

func TestChartRange(t *testing.T) {
	tests := []struct {
		period    string
		count     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{PeriodDaily, 7, time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{PeriodWeekly, 2, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, 3, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		start, end := ChartRange(tt.period, tt.count, now)
		if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
			t.Errorf("ChartRange(%s, %d) = [%v, %v), want [%v, %v)", tt.period, tt.count, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestBuildIncomeChartDaily(t *testing.T) {
	logs := []models.IncomeLog{
		{Date: day(2025, 3, 5), Income: decimal.NewFromInt(999)}, // before the range
		{Date: day(2025, 3, 10), Income: decimal.NewFromInt(450), Miles: intPtr(500), Loads: intPtr(1)},
		{Date: day(2025, 3, 10), Income: decimal.NewFromInt(50)},
		{Date: day(2025, 3, 12), Income: decimal.NewFromInt(300), Miles: intPtr(250)},
	}

	got := BuildIncomeChart(PeriodDaily, 7, now, logs)
	if len(got.Points) != 7 {
		t.Fatalf("got %d points, want 7", len(got.Points))
	}
	if got.From != "2025-03-06" || got.To != "2025-03-12" {
		t.Errorf("range = %s..%s", got.From, got.To)
	}

	mar10 := got.Points[4]
	if mar10.Label != "2025-03-10" || !mar10.Income.Equal(decimal.NewFromInt(500)) || mar10.Logs != 2 || mar10.Miles != 500 || mar10.Loads != 1 {
		t.Errorf("2025-03-10 point = %+v", mar10)
	}
	if !got.Points[5].Income.IsZero() || got.Points[5].Logs != 0 {
		t.Errorf("empty day = %+v", got.Points[5])
	}
	if !got.GrandTotals.Income.Equal(decimal.NewFromInt(800)) || got.GrandTotals.Miles != 750 || got.GrandTotals.Logs != 3 {
		t.Errorf("totals = %+v", got.GrandTotals)
	}
}

func TestBuildIncomeChartWeeklyStartsMonday(t *testing.T) {
	logs := []models.IncomeLog{
		{Date: day(2025, 3, 2), Income: decimal.NewFromInt(100)},  // Sunday, previous week
		{Date: day(2025, 3, 3), Income: decimal.NewFromInt(200)},  // Monday
		{Date: day(2025, 3, 12), Income: decimal.NewFromInt(300)}, // Wednesday
	}

	got := BuildIncomeChart(PeriodWeekly, 2, now, logs)
	if len(got.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(got.Points))
	}
	if got.Points[0].Label != "2025-03-03" || !got.Points[0].Income.Equal(decimal.NewFromInt(200)) {
		t.Errorf("first week = %+v", got.Points[0])
	}
	if got.Points[1].Label != "2025-03-10" || !got.Points[1].Income.Equal(decimal.NewFromInt(300)) {
		t.Errorf("second week = %+v", got.Points[1])
	}
}

func TestBuildIncomeChartMonthly(t *testing.T) {
	logs := []models.IncomeLog{
		{Date: day(2025, 1, 31), Income: decimal.NewFromInt(10)},
		{Date: day(2025, 3, 1), Income: decimal.NewFromInt(20)},
	}
	got := BuildIncomeChart(PeriodMonthly, 3, now, logs)
	labels := []string{"2025-01-01", "2025-02-01", "2025-03-01"}
	for i, want := range labels {
		if got.Points[i].Label != want {
			t.Errorf("point %d label = %s, want %s", i, got.Points[i].Label, want)
		}
	}
	if got.To != "2025-03-31" {
		t.Errorf("To = %s, want 2025-03-31", got.To)
	}
}

func TestSummarize(t *testing.T) {
	user := &models.User{AvailableCash: decimal.NewFromInt(700), HideIncome: true}
	expenses := []models.Expense{
		{Monthly: decimal.NewFromInt(1300), IsActive: true},
		{Monthly: decimal.NewFromInt(9000), IsActive: false},
	}
	goals := []models.Goal{{IsActive: true}, {IsActive: false}, {IsActive: true}}
	logs := []models.IncomeLog{
		{Date: now.AddDate(0, 0, -20), Income: decimal.NewFromInt(400)},
		{Date: now.AddDate(0, 0, -2), Income: decimal.NewFromInt(250)},
	}

	got := Summarize(user, expenses, goals, logs, now)
	if !got.MonthlyExpenses.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("MonthlyExpenses = %s, want 1300", got.MonthlyExpenses)
	}
	if !got.WeeklyExpenses.Equal(decimal.RequireFromString("300.23")) {
		t.Errorf("WeeklyExpenses = %s, want 300.23", got.WeeklyExpenses)
	}
	if !got.IncomeLast7Days.Equal(decimal.NewFromInt(250)) || !got.IncomeLast30Days.Equal(decimal.NewFromInt(650)) {
		t.Errorf("income 7d %s 30d %s", got.IncomeLast7Days, got.IncomeLast30Days)
	}
	if got.ActiveGoals != 2 || !got.HideIncome {
		t.Errorf("ActiveGoals %d HideIncome %v", got.ActiveGoals, got.HideIncome)
	}
	if got.WeekOff.CanTakeOff || !got.WeekOff.Shortfall.Equal(decimal.NewFromInt(580)) {
		t.Errorf("WeekOff = %+v", got.WeekOff)
	}
}
