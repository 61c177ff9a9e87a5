package model

import "gorm.io/gorm"

// Catalog tables. Each holds a unique display name referenced by the
// transaction tables.

type User struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (User) TableName() string { return "users" }

type PaymentMethod struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (PaymentMethod) TableName() string { return "payments_methods" }

type IncomeType struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (IncomeType) TableName() string { return "incomes_types" }

type ExpenseCategory struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (ExpenseCategory) TableName() string { return "expenses_categories" }

type ExpenseSubcategory struct {
	gorm.Model
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
}

func (ExpenseSubcategory) TableName() string { return "expenses_subcategories" }

type ExpenseType struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (ExpenseType) TableName() string { return "expenses_types" }

type ExpenseTransactionType struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

func (ExpenseTransactionType) TableName() string { return "expenses_transactions_types" }
