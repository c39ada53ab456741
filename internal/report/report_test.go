package report

import (
	"bytes"
	"testing"
	"time"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	miles := 500
	snap := &models.AppState{
		Role:          finance.RoleOwner,
		AvailableCash: decimal.NewFromInt(1300),
		Expenses: []models.Expense{
			{Name: "Truck", Category: "truck_payment", Amount: decimal.NewFromInt(1300), Frequency: finance.FrequencyMonthly, Monthly: decimal.NewFromInt(1300), IsActive: true},
			{Name: "Fuel", Category: "fuel", Amount: decimal.NewFromInt(100), Frequency: finance.FrequencyWeekly, Monthly: decimal.NewFromInt(433), IsActive: false},
		},
		Goals: []models.Goal{
			{Name: "Take a Week Off", Amount: decimal.NewFromInt(980), Saved: decimal.NewFromInt(294), Progress: 30, Priority: 1, IsActive: true},
		},
		Income: []models.IncomeLog{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Miles: &miles, Income: decimal.NewFromInt(450), Notes: "Dallas run"},
		},
	}

	buf, err := BuildWorkbook(snap, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetExpenses, SheetGoals, SheetIncome, SheetPayStructures}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatal(err)
	}
	values := map[string]string{}
	for _, row := range summary[1:] {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}
	checks := map[string]string{
		"Available cash":        "1300",
		"Monthly expenses":      "1300",
		"Weekly expenses":       "300",
		"Week off total needed": "1280",
		"Can take week off":     "Yes",
		"Logged income":         "450",
	}
	for k, v := range checks {
		if values[k] != v {
			t.Errorf("summary %q = %q, want %q", k, values[k], v)
		}
	}

	expenses, err := f.GetRows(SheetExpenses)
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 3 {
		t.Fatalf("expense rows = %d, want header + 2", len(expenses))
	}
	if expenses[0][0] != "Name" || expenses[2][0] != "Fuel" || expenses[2][4] != "433" {
		t.Errorf("expense rows = %v", expenses)
	}

	income, err := f.GetRows(SheetIncome)
	if err != nil {
		t.Fatal(err)
	}
	if income[1][0] != "2025-03-10" || income[1][1] != "500" || income[1][2] != "" || income[1][5] != "Dallas run" {
		t.Errorf("income row = %v", income[1])
	}

	pay, err := f.GetRows(SheetPayStructures)
	if err != nil {
		t.Fatal(err)
	}
	if len(pay) != 1 {
		t.Errorf("pay structure rows = %d, want header only", len(pay))
	}
}
