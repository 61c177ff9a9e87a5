// Package server exposes the dashboard's HTTP API: payroll XML ingestion,
// expense CRUD, reporting and database file management.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
	"github.com/rezonia/payroll-tracker/internal/store"
)

// Config holds server configuration
type Config struct {
	Address      string
	DBPassword   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	store  *store.Store
	loader *cfdi.Loader
	log    *zap.Logger
}

// NewServer creates a new API server backed by the given store.
func NewServer(config *Config, st *store.Store, log *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		store:  st,
		loader: cfdi.NewLoader(log),
		log:    log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Payroll XML ingestion
		v1.POST("/payroll/process", s.handleProcessPayroll)
		v1.POST("/payroll/import", s.handleImportPayroll)

		// Incomes
		v1.GET("/incomes", s.handleListIncomes)
		v1.GET("/incomes/summary", s.handleIncomeSummary)

		// Expenses
		v1.GET("/expenses", s.handleListExpenses)
		v1.POST("/expenses", s.handleCreateExpense)
		v1.GET("/expenses/summary", s.handleExpenseSummary)
		v1.POST("/expenses/import", s.handleImportExpensesCSV)
		v1.GET("/expenses/:id", s.handleGetExpense)
		v1.PUT("/expenses/:id", s.handleUpdateExpense)
		v1.DELETE("/expenses/:id", s.handleDeleteExpense)

		// Catalogs
		v1.GET("/catalogs/:name", s.handleListCatalog)
		v1.POST("/catalogs/:name", s.handleAddCatalogEntry)

		// Database file management (password gated)
		v1.GET("/database", s.handleDownloadDatabase)
		v1.PUT("/database", s.handleReplaceDatabase)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleProcessPayroll extracts a single CFDI document from the raw request
// body without persisting anything.
func (s *Server) handleProcessPayroll(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	record, err := cfdi.Extract(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{Record: record})
}

// handleImportPayroll accepts a multipart batch of CFDI documents, extracts
// them in filename order and persists each successful record. Per-file
// failures are reported alongside the imported rows; they never abort the
// batch.
func (s *Server) handleImportPayroll(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form", Details: err.Error()})
		return
	}

	uploads := form.File["files"]
	files := make([]cfdi.File, 0, len(uploads))
	var failures []FileFailure
	for _, upload := range uploads {
		content, err := readUpload(upload)
		if err != nil {
			failures = append(failures, FileFailure{File: upload.Filename, Error: err.Error()})
			continue
		}
		files = append(files, cfdi.File{Name: upload.Filename, Content: content})
	}

	records, parseFailures := s.loader.Load(files)
	for _, f := range parseFailures {
		failures = append(failures, FileFailure{File: f.Name, Error: f.Err.Error()})
	}

	imported := make([]model.IncomePayroll, 0, len(records))
	for _, record := range records {
		row, err := s.store.InsertPayroll(record)
		if err != nil {
			s.log.Warn("failed to persist payroll record",
				zap.String("fiscal_folio", record.FiscalFolio),
				zap.Error(err))
			failures = append(failures, FileFailure{File: record.FiscalFolio, Error: err.Error()})
			continue
		}
		imported = append(imported, *row)
	}

	c.JSON(http.StatusOK, ImportResponse{Imported: imported, Failures: failures})
}

func (s *Server) handleListIncomes(c *gin.Context) {
	filter := store.PayrollFilter{
		Client: c.Query("client"),
		Skip:   intQuery(c, "skip", 0),
		Limit:  intQuery(c, "limit", 100),
	}
	if from, ok := dateQuery(c, "from"); ok {
		filter.From = from
	}
	if to, ok := dateQuery(c, "to"); ok {
		filter.To = to
	}

	incomes, err := s.store.ListPayroll(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListIncomesResponse{Incomes: incomes, Count: len(incomes)})
}
