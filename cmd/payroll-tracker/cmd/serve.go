package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/payroll-tracker/internal/config"
	"github.com/rezonia/payroll-tracker/internal/server"
	"github.com/rezonia/payroll-tracker/internal/store"
)

var (
	serverAddr  string
	serverDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API backing the dashboard.

The API provides endpoints for:
  - POST /api/v1/payroll/process  - Extract one CFDI receipt
  - POST /api/v1/payroll/import   - Batch import CFDI receipts
  - GET  /api/v1/incomes          - List payroll incomes
  - GET  /api/v1/incomes/summary  - Monthly payroll totals
  - CRUD /api/v1/expenses         - Expense transactions
  - POST /api/v1/expenses/import  - Bulk CSV expense import
  - GET  /api/v1/expenses/summary - Month x category pivot
  - GET  /api/v1/catalogs/:name   - Catalog listings
  - GET/PUT /api/v1/database      - Database file download/replace
  - GET  /health                  - Health check

Examples:
  payroll-tracker serve
  payroll-tracker serve --address :9000 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: SERVER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if serverAddr != "" {
		cfg.Address = serverAddr
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if serverDebug {
		cfg.Debug = true
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.NewServer(&server.Config{
		Address:      cfg.Address,
		DBPassword:   cfg.DBPassword,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Debug:        cfg.Debug,
	}, st, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		st.Close()
		os.Exit(0)
	}()

	logger.Info("starting server",
		zap.String("address", cfg.Address),
		zap.String("database", cfg.DatabasePath))

	return srv.Run()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
