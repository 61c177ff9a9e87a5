package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rezonia/payroll-tracker/internal/decimal"
	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate CFDI payroll receipts",
	Long: `Validate one or more CFDI payroll XML files without persisting anything.

Extraction errors (malformed XML, missing namespace, missing digital stamp,
bad pay-period dates) are reported per file. Successfully extracted records
additionally get consistency warnings: a fiscal folio that is not a UUID,
an inverted pay period, or amounts that do not parse as decimals.

Examples:
  payroll-tracker validate receipt.xml
  payroll-tracker validate *.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult holds the validation outcome for one file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no XML files found to validate")
	}

	results := make([]*ValidationResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, validateFile(path))
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case "table", "csv":
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tVALID\tERRORS\tWARNINGS")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%v\t%d\t%d\n", r.File, r.Valid, len(r.Errors), len(r.Warnings))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func validateFile(path string) *ValidationResult {
	result := &ValidationResult{File: path}

	content, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	record, err := cfdi.Extract(content)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Valid = true

	if _, err := uuid.Parse(record.FiscalFolio); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("fiscal folio %q is not a UUID", record.FiscalFolio))
	}
	if record.EndDate.Before(record.StartDate) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("pay period ends (%s) before it starts (%s)",
			record.EndDate.Format("2006-01-02"), record.StartDate.Format("2006-01-02")))
	}
	for field, value := range map[string]string{
		"gross_income": record.GrossIncome,
		"imss":         record.IMSS,
		"isr":          record.ISR,
	} {
		if _, err := decimal.FromString(value); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %q is not a decimal amount", field, value))
		}
	}

	return result
}
