package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
	"github.com/rezonia/payroll-tracker/internal/store"
)

var (
	outputFile  string
	saveRecords bool
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Extract payroll data from CFDI receipts",
	Long: `Process one or more CFDI payroll XML files and extract the normalized
payroll record from each: pay period, fiscal folio, employer, position,
gross income and statutory deductions (IMSS, ISR).

Files are processed in filename order. A file that fails extraction is
reported and skipped; the rest of the batch continues.

Examples:
  payroll-tracker process receipt.xml
  payroll-tracker process *.xml -o records.json
  payroll-tracker process receipts/ -f table
  payroll-tracker process receipts/ --save --db finance.db`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	processCmd.Flags().BoolVar(&saveRecords, "save", false, "Persist extracted records to the database")
}

func runProcess(cmd *cobra.Command, args []string) error {
	paths, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no XML files found to process")
	}
	printVerbose("Found %d files to process\n", len(paths))

	files := make([]cfdi.File, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, cfdi.File{Name: path, Content: content})
	}

	var logger *zap.Logger
	if verbose {
		logger, _ = zap.NewDevelopment()
	}
	records, failures := cfdi.NewLoader(logger).Load(files)

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "Error processing file %s: %v\n", f.Name, f.Err)
	}

	if saveRecords {
		if err := persistRecords(records); err != nil {
			return err
		}
	}

	return outputRecords(records, failures)
}

func persistRecords(records []*model.PayrollRecord) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, record := range records {
		if _, err := st.InsertPayroll(record); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", record.FiscalFolio, err)
			continue
		}
		printVerbose("Saved %s\n", record.FiscalFolio)
	}
	return nil
}

// collectFiles expands globs and directories into a flat list of XML files.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isXMLFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

func outputRecords(records []*model.PayrollRecord, failures []cfdi.FileError) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, records, failures)
	case "table":
		return outputTable(writer, records)
	case "csv":
		return outputCSV(writer, records)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, records []*model.PayrollRecord, failures []cfdi.FileError) error {
	type failureOutput struct {
		File  string `json:"file"`
		Error string `json:"error"`
	}
	out := struct {
		Records  []*model.PayrollRecord `json:"records"`
		Failures []failureOutput        `json:"failures,omitempty"`
	}{Records: records}
	for _, f := range failures {
		out.Failures = append(out.Failures, failureOutput{File: f.Name, Error: f.Err.Error()})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputTable(w *os.File, records []*model.PayrollRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FOLIO\tCLIENT\tPOSITION\tPERIOD\tGROSS\tIMSS\tISR")
	fmt.Fprintln(tw, "-----\t------\t--------\t------\t-----\t----\t---")

	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s - %s\t%s\t%s\t%s\n",
			r.FiscalFolio,
			r.Client,
			r.Position,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			r.GrossIncome,
			r.IMSS,
			r.ISR,
		)
	}
	return tw.Flush()
}

func outputCSV(w *os.File, records []*model.PayrollRecord) error {
	fmt.Fprintln(w, "fiscal_folio,client,position,start_date,end_date,gross_income,imss,isr")

	for _, r := range records {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s\n",
			r.FiscalFolio,
			escapeCSV(r.Client),
			escapeCSV(r.Position),
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			r.GrossIncome,
			r.IMSS,
			r.ISR,
		)
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
