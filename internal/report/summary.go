// Package report builds the dashboard's pivot summaries from stored rows.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/payroll-tracker/internal/decimal"
	"github.com/rezonia/payroll-tracker/internal/model"
)

// ExpenseSummary is a month-by-category pivot of expense amounts.
type ExpenseSummary struct {
	Months     []string                      `json:"months"`
	Categories []string                      `json:"categories"`
	Cells      map[string]map[string]string  `json:"cells"`
	RowTotals  map[string]string             `json:"row_totals"`
	ColTotals  map[string]string             `json:"col_totals"`
	Total      string                        `json:"total"`
}

// PivotExpenses groups expenses as month x category with cell, row, column
// and grand totals. Amounts come out as fixed two-decimal strings.
func PivotExpenses(rows []model.ExpenseTransaction, categories []model.ExpenseCategory) *ExpenseSummary {
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	cells := make(map[string]map[string]decimal.Decimal)
	rowTotals := make(map[string]decimal.Decimal)
	colTotals := make(map[string]decimal.Decimal)
	total := money.Zero
	monthSet := make(map[string]struct{})
	catSet := make(map[string]struct{})

	for _, row := range rows {
		month := row.Date.Format("2006-01")
		category := names[row.CategoryID]
		if category == "" {
			category = "Uncategorized"
		}
		amount := money.FromFloat(row.Amount)

		if cells[month] == nil {
			cells[month] = make(map[string]decimal.Decimal)
		}
		cells[month][category] = cells[month][category].Add(amount)
		rowTotals[month] = rowTotals[month].Add(amount)
		colTotals[category] = colTotals[category].Add(amount)
		total = total.Add(amount)
		monthSet[month] = struct{}{}
		catSet[category] = struct{}{}
	}

	summary := &ExpenseSummary{
		Months:     sortedKeys(monthSet),
		Categories: sortedKeys(catSet),
		Cells:      make(map[string]map[string]string, len(cells)),
		RowTotals:  make(map[string]string, len(rowTotals)),
		ColTotals:  make(map[string]string, len(colTotals)),
		Total:      total.StringFixed(2),
	}
	for month, byCategory := range cells {
		summary.Cells[month] = make(map[string]string, len(byCategory))
		for category, amount := range byCategory {
			summary.Cells[month][category] = amount.StringFixed(2)
		}
	}
	for month, amount := range rowTotals {
		summary.RowTotals[month] = amount.StringFixed(2)
	}
	for category, amount := range colTotals {
		summary.ColTotals[category] = amount.StringFixed(2)
	}
	return summary
}

// PayrollMonth aggregates payroll incomes for one month keyed by pay-period
// start.
type PayrollMonth struct {
	Month           string `json:"month"`
	GrossIncome     string `json:"gross_income"`
	TotalDeductions string `json:"total_deductions"`
	NetIncome       string `json:"net_income"`
	Receipts        int    `json:"receipts"`
}

// SummarizePayroll totals payroll incomes per month, oldest first.
func SummarizePayroll(rows []model.IncomePayroll) []PayrollMonth {
	type acc struct {
		gross, deductions, net decimal.Decimal
		receipts               int
	}
	byMonth := make(map[string]*acc)

	for _, row := range rows {
		month := row.StartDate.Format("2006-01")
		a := byMonth[month]
		if a == nil {
			a = &acc{}
			byMonth[month] = a
		}
		a.gross = a.gross.Add(money.FromFloat(row.GrossIncome))
		a.deductions = a.deductions.Add(money.FromFloat(row.TotalDeductions))
		a.net = a.net.Add(money.FromFloat(row.NetIncome))
		a.receipts++
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	result := make([]PayrollMonth, 0, len(months))
	for _, month := range months {
		a := byMonth[month]
		result = append(result, PayrollMonth{
			Month:           month,
			GrossIncome:     a.gross.StringFixed(2),
			TotalDeductions: a.deductions.StringFixed(2),
			NetIncome:       a.net.StringFixed(2),
			Receipts:        a.receipts,
		})
	}
	return result
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
