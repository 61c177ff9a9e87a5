// Package model defines the normalized payroll record produced by the CFDI
// extractor along with the persistence models backing the dashboard.
package model

import "time"

// Sentinel values substituted when an optional CFDI node or attribute is
// absent. Every default is applied in a named branch of the extractor so it
// stays auditable.
const (
	NotFound   = "Not Found"
	ZeroAmount = "0.00"
)

// PayrollRecord is the normalized output of one CFDI payroll document. It is
// a value object: built once per successfully extracted document, never
// mutated afterwards. Monetary fields stay as decimal strings; no arithmetic
// happens on them until persistence.
type PayrollRecord struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	FiscalFolio string    `json:"fiscal_folio"`
	Client      string    `json:"client"`
	Position    string    `json:"position"`
	GrossIncome string    `json:"gross_income"`
	IMSS        string    `json:"imss"`
	ISR         string    `json:"isr"`
}
