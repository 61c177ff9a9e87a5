package server

import (
	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/store"
)

// ProcessResponse is the response for the extract-only endpoint
type ProcessResponse struct {
	Record *model.PayrollRecord `json:"record"`
}

// FileFailure reports one document that failed during a batch import
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportResponse is the response for the batch import endpoint
type ImportResponse struct {
	Imported []model.IncomePayroll `json:"imported"`
	Failures []FileFailure         `json:"failures,omitempty"`
}

// CSVImportResponse is the response for the expense CSV import endpoint
type CSVImportResponse struct {
	Inserted int           `json:"inserted"`
	Failures []FileFailure `json:"failures,omitempty"`
}

// ListIncomesResponse is the response for the incomes listing endpoint
type ListIncomesResponse struct {
	Incomes []model.IncomePayroll `json:"incomes"`
	Count   int                   `json:"count"`
}

// ListExpensesResponse is the response for the expense listing endpoint
type ListExpensesResponse struct {
	Expenses []model.ExpenseTransaction `json:"expenses"`
	Count    int                        `json:"count"`
}

// CatalogResponse is the response for catalog listings
type CatalogResponse struct {
	Catalog string               `json:"catalog"`
	Entries []store.CatalogEntry `json:"entries"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
