package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// expenseCSVHeader is the column order expected by the bulk importer.
var expenseCSVHeader = []string{
	"date", "category_id", "subcategory_id", "expense_type_id",
	"payment_method_id", "amount", "tax", "vendor", "location",
	"description", "notes",
}

// RowError reports a single CSV row that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportExpensesCSV bulk-inserts expenses from CSV. Like the XML batch
// loader, a bad row is reported and skipped without aborting the import.
// Returns the number of rows inserted.
func (s *Store) ImportExpensesCSV(r io.Reader) (int, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, nil, fmt.Errorf("read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return 0, nil, err
	}

	inserted := 0
	var failures []RowError
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failures = append(failures, RowError{Line: line, Err: err})
			continue
		}

		expense, err := parseExpenseRow(row)
		if err != nil {
			failures = append(failures, RowError{Line: line, Err: err})
			continue
		}
		if err := s.CreateExpense(expense); err != nil {
			failures = append(failures, RowError{Line: line, Err: err})
			continue
		}
		inserted++
	}
	return inserted, failures, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expenseCSVHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(expenseCSVHeader), len(header))
	}
	for i, name := range expenseCSVHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return fmt.Errorf("column %d: expected %q, got %q", i+1, name, header[i])
		}
	}
	return nil
}

func parseExpenseRow(row []string) (*model.ExpenseTransaction, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	categoryID, err := parseUint(row[1], "category_id")
	if err != nil {
		return nil, err
	}
	subcategoryID, err := parseOptionalUint(row[2], "subcategory_id")
	if err != nil {
		return nil, err
	}
	expenseTypeID, err := parseUint(row[3], "expense_type_id")
	if err != nil {
		return nil, err
	}
	paymentMethodID, err := parseOptionalUint(row[4], "payment_method_id")
	if err != nil {
		return nil, err
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	tax := 0.0
	if v := strings.TrimSpace(row[6]); v != "" {
		if tax, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("tax: %w", err)
		}
	}

	return &model.ExpenseTransaction{
		Date:            date,
		CategoryID:      categoryID,
		SubcategoryID:   subcategoryID,
		ExpenseTypeID:   expenseTypeID,
		PaymentMethodID: paymentMethodID,
		Amount:          amount,
		Tax:             tax,
		Vendor:          strings.TrimSpace(row[7]),
		Location:        strings.TrimSpace(row[8]),
		Description:     strings.TrimSpace(row[9]),
		Notes:           strings.TrimSpace(row[10]),
	}, nil
}

func parseUint(value, field string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return uint(v), nil
}

func parseOptionalUint(value, field string) (uint, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseUint(value, field)
}
