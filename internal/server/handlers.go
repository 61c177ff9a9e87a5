package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/payroll-tracker/internal/model"
	"github.com/rezonia/payroll-tracker/internal/report"
	"github.com/rezonia/payroll-tracker/internal/store"
)

func (s *Server) handleIncomeSummary(c *gin.Context) {
	incomes, err := s.store.ListPayroll(store.PayrollFilter{Limit: intQuery(c, "limit", 1000)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": report.SummarizePayroll(incomes)})
}

func (s *Server) handleListExpenses(c *gin.Context) {
	filter := store.ExpenseFilter{
		OwnerID:    uint(intQuery(c, "owner_id", 0)),
		TypeID:     uint(intQuery(c, "type_id", 0)),
		CategoryID: uint(intQuery(c, "category_id", 0)),
		Skip:       intQuery(c, "skip", 0),
		Limit:      intQuery(c, "limit", 100),
	}
	if from, ok := dateQuery(c, "from"); ok {
		filter.From = from
	}
	if to, ok := dateQuery(c, "to"); ok {
		filter.To = to
	}

	expenses, err := s.store.ListExpenses(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListExpensesResponse{Expenses: expenses, Count: len(expenses)})
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	var expense model.ExpenseTransaction
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expense payload", Details: err.Error()})
		return
	}

	if err := s.store.CreateExpense(&expense); err != nil {
		status := http.StatusInternalServerError
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (s *Server) handleGetExpense(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	expense, err := s.store.GetExpense(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if expense == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var updates model.ExpenseTransaction
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expense payload", Details: err.Error()})
		return
	}

	expense, err := s.store.UpdateExpense(id, &updates)
	if err != nil {
		status := http.StatusInternalServerError
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := s.store.DeleteExpense(id); err != nil {
		status := http.StatusInternalServerError
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExpenseSummary(c *gin.Context) {
	filter := store.ExpenseFilter{Limit: intQuery(c, "limit", 1000)}
	if from, ok := dateQuery(c, "from"); ok {
		filter.From = from
	}
	if to, ok := dateQuery(c, "to"); ok {
		filter.To = to
	}

	expenses, err := s.store.ListExpenses(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	var categories []model.ExpenseCategory
	entries, err := s.store.ListCatalog("expense_categories")
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	for _, entry := range entries {
		categories = append(categories, model.ExpenseCategory{Name: entry.Name})
		categories[len(categories)-1].ID = entry.ID
	}

	c.JSON(http.StatusOK, report.PivotExpenses(expenses, categories))
}

func (s *Server) handleImportExpensesCSV(c *gin.Context) {
	body := c.Request.Body
	defer body.Close()

	inserted, rowFailures, err := s.store.ImportExpensesCSV(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid CSV", Details: err.Error()})
		return
	}

	failures := make([]FileFailure, 0, len(rowFailures))
	for _, f := range rowFailures {
		failures = append(failures, FileFailure{
			File:  fmt.Sprintf("row %d", f.Line),
			Error: f.Err.Error(),
		})
	}
	c.JSON(http.StatusOK, CSVImportResponse{Inserted: inserted, Failures: failures})
}

func (s *Server) handleListCatalog(c *gin.Context) {
	name := c.Param("name")
	entries, err := s.store.ListCatalog(name)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, CatalogResponse{Catalog: name, Entries: entries})
}

func (s *Server) handleAddCatalogEntry(c *gin.Context) {
	name := c.Param("name")

	var payload struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload", Details: err.Error()})
		return
	}

	entry, err := s.store.AddCatalogEntry(name, payload.Name)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// handleDownloadDatabase streams the sqlite file. The password check mirrors
// the original dashboard: plain comparison against DB_PASSWORD.
func (s *Server) handleDownloadDatabase(c *gin.Context) {
	if !s.authorizeDatabaseAccess(c) {
		return
	}

	data, err := s.store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	filename := filepath.Base(s.store.Path())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (s *Server) handleReplaceDatabase(c *gin.Context) {
	if !s.authorizeDatabaseAccess(c) {
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty database upload"})
		return
	}

	if err := s.store.Restore(body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "database replaced"})
}

func (s *Server) authorizeDatabaseAccess(c *gin.Context) bool {
	if s.config.DBPassword == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "database management is disabled (no DB_PASSWORD configured)"})
		return false
	}
	if c.GetHeader("X-DB-Password") != s.config.DBPassword {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
		return false
	}
	return true
}

func readUpload(upload *multipart.FileHeader) ([]byte, error) {
	f, err := upload.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	value := c.Query(key)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
