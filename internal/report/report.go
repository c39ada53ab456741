// Package report renders a user's financial state as an XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"time"

	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary       = "Summary"
	SheetExpenses      = "Expenses"
	SheetGoals         = "Goals"
	SheetIncome        = "Income"
	SheetPayStructures = "Pay Structures"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func optionalInt(p *int) any {
	if p == nil {
		return ""
	}
	return *p
}

func optionalDecimal(p *decimal.Decimal) any {
	if p == nil {
		return ""
	}
	return money(*p)
}

func summarySheet(snap *models.AppState, now time.Time) sheet {
	active := models.ActiveExpenses(snap.Expenses)
	monthly := finance.TotalMonthly(active)
	weekOff := finance.CalculateWeekOff(active, snap.AvailableCash)

	totalIncome := decimal.Zero
	for _, l := range snap.Income {
		totalIncome = totalIncome.Add(l.Income)
	}

	canTakeOff := "No"
	if weekOff.CanTakeOff {
		canTakeOff = "Yes"
	}

	return sheet{
		name:   SheetSummary,
		header: []any{"Item", "Value"},
		rows: [][]any{
			{"Generated", now.UTC().Format(time.RFC3339)},
			{"Role", string(snap.Role)},
			{"Available cash", money(snap.AvailableCash)},
			{"Monthly expenses", money(monthly)},
			{"Weekly expenses", money(weekOff.WeeklyExpenses)},
			{"Week off total needed", money(weekOff.TotalNeeded)},
			{"Can take week off", canTakeOff},
			{"Week off shortfall", money(weekOff.Shortfall)},
			{"Logged income", money(totalIncome)},
			{"Income logs", len(snap.Income)},
		},
		widths: []float64{24, 24},
	}
}

func expensesSheet(expenses []models.Expense) sheet {
	s := sheet{
		name:   SheetExpenses,
		header: []any{"Name", "Category", "Amount", "Frequency", "Monthly", "Active"},
		widths: []float64{28, 20, 12, 12, 12, 8},
	}
	for _, e := range expenses {
		s.rows = append(s.rows, []any{e.Name, string(e.Category), money(e.Amount), string(e.Frequency), money(e.Monthly), e.IsActive})
	}
	return s
}

func goalsSheet(goals []models.Goal) sheet {
	s := sheet{
		name:   SheetGoals,
		header: []any{"Name", "Target", "Saved", "Progress %", "Deadline", "Priority", "Active"},
		widths: []float64{28, 12, 12, 12, 14, 10, 8},
	}
	for _, g := range goals {
		deadline := ""
		if g.Deadline != nil {
			deadline = g.Deadline.Format(time.DateOnly)
		}
		s.rows = append(s.rows, []any{g.Name, money(g.Amount), money(g.Saved), g.DisplayProgress(), deadline, g.Priority, g.IsActive})
	}
	return s
}

func incomeSheet(logs []models.IncomeLog) sheet {
	s := sheet{
		name:   SheetIncome,
		header: []any{"Date", "Miles", "Loads", "Hours", "Income", "Notes"},
		widths: []float64{14, 10, 10, 10, 12, 40},
	}
	for _, l := range logs {
		s.rows = append(s.rows, []any{l.Date.Format(time.DateOnly), optionalInt(l.Miles), optionalInt(l.Loads), optionalDecimal(l.Hours), money(l.Income), l.Notes})
	}
	return s
}

func payStructuresSheet(pay []models.PayStructure) sheet {
	s := sheet{
		name:   SheetPayStructures,
		header: []any{"Pay type", "Rate", "Description", "Active"},
		widths: []float64{20, 12, 40, 8},
	}
	for _, p := range pay {
		s.rows = append(s.rows, []any{string(p.PayType), money(p.Rate), p.Description, p.IsActive})
	}
	return s
}

// BuildWorkbook writes one sheet per entity plus a summary sheet.
func BuildWorkbook(snap *models.AppState, now time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []sheet{
		summarySheet(snap, now),
		expensesSheet(snap.Expenses),
		goalsSheet(snap.Goals),
		incomeSheet(snap.Income),
		payStructuresSheet(snap.PayStructures),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, fmt.Errorf("write %s sheet: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	for i, w := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
