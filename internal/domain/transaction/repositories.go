package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Each source has its own repository so a misconfigured table or join only
// breaks that source's ingestion, never the whole report. All range queries
// are inclusive on both ends.

type ExpenseRepository interface {
	ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*Expense, error)
}

type DeductionRepository interface {
	ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*Deduction, error)
}

type PayrollRepository interface {
	ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*Payroll, error)
}

type InvoiceRepository interface {
	ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*Invoice, error)
}
