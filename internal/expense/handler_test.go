package expense

import (
	"testing"

	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	expenses := []models.Expense{
		{Name: "Fuel", Category: "fuel", Monthly: decimal.NewFromInt(433)},
		{Name: "DEF", Category: "fuel", Monthly: decimal.NewFromInt(40)},
		{Name: "Rent", Category: "housing", Monthly: decimal.NewFromInt(1200)},
	}

	got := Summarize(expenses)
	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Items[0].Category != "housing" || got.Items[1].Category != "fuel" {
		t.Errorf("order = %s, %s; want housing, fuel", got.Items[0].Category, got.Items[1].Category)
	}
	fuel := got.Items[1]
	if fuel.Count != 2 || !fuel.Monthly.Equal(decimal.NewFromInt(473)) || fuel.Label != "Fuel" {
		t.Errorf("fuel item = %+v", fuel)
	}
	if !got.TotalMonthly.Equal(decimal.NewFromInt(1673)) {
		t.Errorf("TotalMonthly = %s, want 1673", got.TotalMonthly)
	}
	if !got.TotalWeekly.Equal(decimal.RequireFromString("386.37")) {
		t.Errorf("TotalWeekly = %s, want 386.37", got.TotalWeekly)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if len(got.Items) != 0 || !got.TotalMonthly.IsZero() || !got.TotalWeekly.IsZero() {
		t.Errorf("empty summary = %+v", got)
	}
}
