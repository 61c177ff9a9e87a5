package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	dbPath       string
)

var rootCmd = &cobra.Command{
	Use:   "payroll-tracker",
	Short: "Track expenses and CFDI payroll income",
	Long: `Payroll Tracker ingests SAT CFDI payroll receipts (XML with a Nomina
complement) and keeps them, together with recorded expenses, in a local
sqlite database.

Examples:
  # Extract payroll data from receipts
  payroll-tracker process *.xml

  # Extract and persist to the database
  payroll-tracker process receipts/ --save

  # Validate receipts without persisting
  payroll-tracker validate receipt.xml

  # Start the HTTP API
  payroll-tracker serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (env: DATABASE_PATH)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if dbPath == "" {
		dbPath = os.Getenv("DATABASE_PATH")
	}
	if dbPath == "" {
		dbPath = "finance.db"
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
