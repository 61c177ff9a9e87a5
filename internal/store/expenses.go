package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// ExpenseFilter narrows expense listings. Zero values mean "no filter";
// Limit defaults to 100.
type ExpenseFilter struct {
	OwnerID    uint
	TypeID     uint
	CategoryID uint
	From       time.Time
	To         time.Time
	Skip       int
	Limit      int
}

// CreateExpense inserts one expense transaction.
func (s *Store) CreateExpense(e *model.ExpenseTransaction) error {
	if e.Amount <= 0 {
		return model.NewValidationError("amount", e.Amount, "positive", "amount must be greater than zero")
	}
	if e.CategoryID == 0 {
		return model.NewValidationError("category_id", nil, "required", "category is required")
	}
	if e.ExpenseTypeID == 0 {
		return model.NewValidationError("expense_type_id", nil, "required", "expense type is required")
	}
	if err := s.conn().Create(e).Error; err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetExpense fetches one expense by id. Returns nil without error when the
// record does not exist.
func (s *Store) GetExpense(id uint) (*model.ExpenseTransaction, error) {
	var e model.ExpenseTransaction
	err := s.conn().First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return &e, nil
}

// UpdateExpense applies the non-zero fields of updates to the expense with
// the given id.
func (s *Store) UpdateExpense(id uint, updates *model.ExpenseTransaction) (*model.ExpenseTransaction, error) {
	existing, err := s.GetExpense(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.NewValidationError("id", id, "exists", "expense not found")
	}
	if err := s.conn().Model(existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update expense %d: %w", id, err)
	}
	return existing, nil
}

// DeleteExpense soft-deletes an expense.
func (s *Store) DeleteExpense(id uint) error {
	res := s.conn().Delete(&model.ExpenseTransaction{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expense %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.NewValidationError("id", id, "exists", "expense not found")
	}
	return nil
}

// ListExpenses returns expenses newest first.
func (s *Store) ListExpenses(filter ExpenseFilter) ([]model.ExpenseTransaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := s.conn().Model(&model.ExpenseTransaction{})
	if filter.OwnerID != 0 {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.TypeID != 0 {
		q = q.Where("type_id = ?", filter.TypeID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To)
	}

	var rows []model.ExpenseTransaction
	if err := q.Order("date DESC").Offset(filter.Skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return rows, nil
}
