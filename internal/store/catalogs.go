package store

import (
	"fmt"
	"time"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// CatalogEntry is one row of a name catalog.
type CatalogEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// catalogTables maps public catalog names to their tables. Acting as an
// allowlist keeps arbitrary table names out of queries.
var catalogTables = map[string]string{
	"users":                 "users",
	"payment_methods":       "payments_methods",
	"income_types":          "incomes_types",
	"expense_categories":    "expenses_categories",
	"expense_subcategories": "expenses_subcategories",
	"expense_types":         "expenses_types",
	"transaction_types":     "expenses_transactions_types",
}

// CatalogNames returns the valid catalog identifiers.
func CatalogNames() []string {
	names := make([]string, 0, len(catalogTables))
	for name := range catalogTables {
		names = append(names, name)
	}
	return names
}

// ListCatalog returns the entries of a catalog ordered by name.
func (s *Store) ListCatalog(name string) ([]CatalogEntry, error) {
	table, ok := catalogTables[name]
	if !ok {
		return nil, model.NewValidationError("catalog", name, "known", "unknown catalog")
	}

	var entries []CatalogEntry
	err := s.conn().Table(table).
		Select("id", "name").
		Where("deleted_at IS NULL").
		Order("name").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list catalog %s: %w", name, err)
	}
	return entries, nil
}

// AddCatalogEntry inserts a new named entry into a catalog.
func (s *Store) AddCatalogEntry(name, entry string) (*CatalogEntry, error) {
	table, ok := catalogTables[name]
	if !ok {
		return nil, model.NewValidationError("catalog", name, "known", "unknown catalog")
	}
	if entry == "" {
		return nil, model.NewValidationError("name", nil, "required", "entry name is required")
	}

	now := time.Now()
	values := map[string]interface{}{
		"name":       entry,
		"created_at": now,
		"updated_at": now,
	}
	if err := s.conn().Table(table).Create(values).Error; err != nil {
		return nil, fmt.Errorf("add %s entry: %w", name, err)
	}

	var created CatalogEntry
	err := s.conn().Table(table).
		Select("id", "name").
		Where("name = ? AND deleted_at IS NULL", entry).
		Order("id DESC").
		Limit(1).
		Scan(&created).Error
	if err != nil {
		return nil, fmt.Errorf("read back %s entry: %w", name, err)
	}
	return &created, nil
}
