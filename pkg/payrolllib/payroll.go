// Package payrolllib provides a public API for extracting payroll data from
// SAT CFDI receipts.
//
// Example usage:
//
//	record, err := payrolllib.Extract(xmlBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(record.FiscalFolio, record.GrossIncome)
package payrolllib

import (
	"go.uber.org/zap"

	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
)

// Re-export core types for public API
type (
	PayrollRecord = model.PayrollRecord
	ParseError    = model.ParseError
	ErrorKind     = model.ErrorKind
	File          = cfdi.File
	FileError     = cfdi.FileError
)

// Re-export error kinds
const (
	KindNamespaceNotFound = model.KindNamespaceNotFound
	KindMalformedXML      = model.KindMalformedXML
	KindMissingStamp      = model.KindMissingStamp
	KindInvalidDate       = model.KindInvalidDate
	KindUnexpected        = model.KindUnexpected
)

// Re-export sentinel defaults
const (
	NotFound   = model.NotFound
	ZeroAmount = model.ZeroAmount
)

// Extract parses one CFDI payroll document into a normalized record.
func Extract(content []byte) (*PayrollRecord, error) {
	return cfdi.Extract(content)
}

// Load extracts a batch of named documents in filename-ascending order,
// reporting per-file failures without aborting the batch.
func Load(files []File, log *zap.Logger) ([]*PayrollRecord, []FileError) {
	return cfdi.NewLoader(log).Load(files)
}
