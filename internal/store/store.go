// Package store persists dashboard records in a single sqlite file managed
// through gorm. The file itself can be downloaded and swapped at runtime,
// so every query goes through a guarded connection handle.
package store

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// Store wraps the sqlite-backed record store.
type Store struct {
	mu   sync.RWMutex
	db   *gorm.DB
	path string
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func openDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.PaymentMethod{},
		&model.IncomeType{},
		&model.ExpenseCategory{},
		&model.ExpenseSubcategory{},
		&model.ExpenseType{},
		&model.ExpenseTransactionType{},
		&model.ExpenseTransaction{},
		&model.IncomePayroll{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// conn returns the live gorm handle. Callers must not retain it across a
// Restore.
func (s *Store) conn() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
