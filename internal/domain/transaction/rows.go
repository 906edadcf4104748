// Package transaction holds the four transactional source-row types that
// feed statement ingestion alongside the journal: expenses, payroll
// deductions, payroll runs and sales invoices. Each row carries an amount,
// a date and optional account/cost-center references; ingestors translate
// them into normalized movements.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a recorded operating expense
type Expense struct {
	ID           int64
	CompanyID    uuid.UUID
	AccountID    *uuid.UUID
	CostCenterID *uuid.UUID
	Amount       decimal.Decimal
	Description  string
	ExpenseDate  time.Time
}

// Deduction is a payroll deduction row
type Deduction struct {
	ID            int64
	CompanyID     uuid.UUID
	AccountID     *uuid.UUID
	CostCenterID  *uuid.UUID
	Amount        decimal.Decimal
	Reason        string
	DeductionDate time.Time
}

// Payroll is a salary payment row
type Payroll struct {
	ID           int64
	CompanyID    uuid.UUID
	AccountID    *uuid.UUID
	CostCenterID *uuid.UUID
	Amount       decimal.Decimal
	EmployeeName string
	PayrollDate  time.Time
}

// Invoice is a sales invoice row
type Invoice struct {
	ID           int64
	CompanyID    uuid.UUID
	AccountID    *uuid.UUID
	CostCenterID *uuid.UUID
	Total        decimal.Decimal
	CustomerName string
	InvoiceDate  time.Time
}
