package model

import (
	"time"

	"gorm.io/gorm"
)

// IncomePayroll is one persisted payroll income row. Total deductions and
// net income are derived from the parsed record at insert time.
type IncomePayroll struct {
	gorm.Model
	IncomeTypeID         uint      `gorm:"default:1" json:"income_type_id"`
	PaymentDestinationID uint      `gorm:"default:3" json:"payment_destination_id"`
	OwnerID              uint      `gorm:"not null;default:1" json:"owner_id"`
	GrossIncome          float64   `json:"gross_income"`
	IMSS                 float64   `gorm:"column:imss" json:"imss"`
	ISR                  float64   `gorm:"column:isr" json:"isr"`
	TotalDeductions      float64   `json:"total_deductions"`
	NetIncome            float64   `json:"net_income"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	FiscalFolio          string    `gorm:"uniqueIndex" json:"fiscal_folio"`
	Client               string    `json:"client"`
	Position             string    `json:"position"`
	Notes                string    `json:"notes"`
}

func (IncomePayroll) TableName() string { return "incomes_payroll" }
