package model

import (
	"time"

	"gorm.io/gorm"
)

// ExpenseTransaction is one recorded expense.
type ExpenseTransaction struct {
	gorm.Model
	CategoryID      uint      `gorm:"not null" json:"category_id"`
	SubcategoryID   uint      `json:"subcategory_id"`
	TypeID          uint      `gorm:"default:1" json:"type_id"`
	ExpenseTypeID   uint      `gorm:"not null" json:"expense_type_id"`
	PaymentMethodID uint      `json:"payment_method_id"`
	OwnerID         uint      `gorm:"not null;default:1" json:"owner_id"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Tax             float64   `json:"tax"`
	InvoiceFlag     bool      `gorm:"default:false" json:"invoice_flag"`
	Date            time.Time `json:"date"`
	Vendor          string    `json:"vendor"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Notes           string    `json:"notes"`
}

func (ExpenseTransaction) TableName() string { return "expenses_transactions" }
