package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/report"
)

func expense(day int, month time.Month, categoryID uint, amount float64) model.ExpenseTransaction {
	return model.ExpenseTransaction{
		CategoryID: categoryID,
		Amount:     amount,
		Date:       time.Date(2024, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestPivotExpenses(t *testing.T) {
	groceries := model.ExpenseCategory{Name: "Groceries"}
	groceries.ID = 1
	utilities := model.ExpenseCategory{Name: "Utilities"}
	utilities.ID = 2
	categories := []model.ExpenseCategory{groceries, utilities}

	rows := []model.ExpenseTransaction{
		expense(3, time.January, 1, 100.50),
		expense(18, time.January, 1, 49.50),
		expense(20, time.January, 2, 940.00),
		expense(2, time.February, 1, 80.00),
		expense(9, time.February, 3, 15.25), // unknown category
	}

	summary := report.PivotExpenses(rows, categories)

	assert.Equal(t, []string{"2024-01", "2024-02"}, summary.Months)
	assert.Equal(t, []string{"Groceries", "Uncategorized", "Utilities"}, summary.Categories)

	assert.Equal(t, "150.00", summary.Cells["2024-01"]["Groceries"])
	assert.Equal(t, "940.00", summary.Cells["2024-01"]["Utilities"])
	assert.Equal(t, "80.00", summary.Cells["2024-02"]["Groceries"])
	assert.Equal(t, "15.25", summary.Cells["2024-02"]["Uncategorized"])

	assert.Equal(t, "1090.00", summary.RowTotals["2024-01"])
	assert.Equal(t, "95.25", summary.RowTotals["2024-02"])
	assert.Equal(t, "230.50", summary.ColTotals["Groceries"])
	assert.Equal(t, "1185.25", summary.Total)
}

func TestPivotExpenses_Empty(t *testing.T) {
	summary := report.PivotExpenses(nil, nil)
	assert.Empty(t, summary.Months)
	assert.Empty(t, summary.Categories)
	assert.Equal(t, "0.00", summary.Total)
}

func TestSummarizePayroll(t *testing.T) {
	rows := []model.IncomePayroll{
		{
			StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			GrossIncome:     15000.00,
			TotalDeductions: 2551.25,
			NetIncome:       12448.75,
		},
		{
			StartDate:       time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			GrossIncome:     15000.00,
			TotalDeductions: 2551.25,
			NetIncome:       12448.75,
		},
		{
			StartDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			GrossIncome:     16000.00,
			TotalDeductions: 2700.00,
			NetIncome:       13300.00,
		},
	}

	months := report.SummarizePayroll(rows)
	require.Len(t, months, 2)

	assert.Equal(t, "2024-01", months[0].Month)
	assert.Equal(t, "30000.00", months[0].GrossIncome)
	assert.Equal(t, "5102.50", months[0].TotalDeductions)
	assert.Equal(t, "24897.50", months[0].NetIncome)
	assert.Equal(t, 2, months[0].Receipts)

	assert.Equal(t, "2024-02", months[1].Month)
	assert.Equal(t, 1, months[1].Receipts)
}
