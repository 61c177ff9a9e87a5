package store

import (
	"fmt"
	"time"

	"github.com/rezonia/payroll-tracker/internal/decimal"
	"github.com/rezonia/payroll-tracker/internal/model"
)

// PayrollFilter narrows payroll income listings. Zero values mean "no
// filter"; Limit defaults to 100.
type PayrollFilter struct {
	Client string
	From   time.Time
	To     time.Time
	Skip   int
	Limit  int
}

// InsertPayroll converts a parsed payroll record into an income row and
// persists it. Total deductions and net income are derived here, where the
// opaque decimal strings finally get parsed; a malformed amount or a
// duplicate fiscal folio fails this record only.
func (s *Store) InsertPayroll(rec *model.PayrollRecord) (*model.IncomePayroll, error) {
	gross, err := decimal.FromString(rec.GrossIncome)
	if err != nil {
		return nil, model.NewValidationError("gross_income", rec.GrossIncome, "decimal", "not a valid amount")
	}
	imss, err := decimal.FromString(rec.IMSS)
	if err != nil {
		return nil, model.NewValidationError("imss", rec.IMSS, "decimal", "not a valid amount")
	}
	isr, err := decimal.FromString(rec.ISR)
	if err != nil {
		return nil, model.NewValidationError("isr", rec.ISR, "decimal", "not a valid amount")
	}

	total := decimal.TotalDeductions(imss, isr)
	net := decimal.NetIncome(gross, total)

	db := s.conn()

	var count int64
	if err := db.Model(&model.IncomePayroll{}).Where("fiscal_folio = ?", rec.FiscalFolio).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check fiscal folio: %w", err)
	}
	if count > 0 {
		return nil, model.NewValidationError("fiscal_folio", rec.FiscalFolio, "unique", "already imported")
	}

	row := &model.IncomePayroll{
		GrossIncome:     gross.InexactFloat64(),
		IMSS:            imss.InexactFloat64(),
		ISR:             isr.InexactFloat64(),
		TotalDeductions: total.InexactFloat64(),
		NetIncome:       net.InexactFloat64(),
		StartDate:       rec.StartDate,
		EndDate:         rec.EndDate,
		FiscalFolio:     rec.FiscalFolio,
		Client:          rec.Client,
		Position:        rec.Position,
	}
	if err := db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert payroll income: %w", err)
	}
	return row, nil
}

// ListPayroll returns payroll incomes newest pay period first.
func (s *Store) ListPayroll(filter PayrollFilter) ([]model.IncomePayroll, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := s.conn().Model(&model.IncomePayroll{})
	if filter.Client != "" {
		q = q.Where("client LIKE ?", "%"+filter.Client+"%")
	}
	if !filter.From.IsZero() {
		q = q.Where("start_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("start_date <= ?", filter.To)
	}

	var rows []model.IncomePayroll
	if err := q.Order("start_date DESC").Offset(filter.Skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list payroll incomes: %w", err)
	}
	return rows, nil
}

// GetPayrollByFolio looks up a payroll income by its fiscal folio.
func (s *Store) GetPayrollByFolio(folio string) (*model.IncomePayroll, error) {
	var row model.IncomePayroll
	if err := s.conn().Where("fiscal_folio = ?", folio).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
