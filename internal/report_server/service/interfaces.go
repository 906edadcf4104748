package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/reporting"
)

// ReportQuery carries the parsed parameters of a statement request
type ReportQuery struct {
	Period shared.DateRange
	Source string // "all" or one source type
	Search string
}

// ReportService builds financial statements for a tenant
type ReportService interface {
	// IncomeStatement aggregates the period's movements into an income
	// statement. Individual source failures are reported inside the
	// payload, not as an error.
	IncomeStatement(ctx context.Context, tenant shared.TenantContext, query ReportQuery) (*reporting.IncomeStatement, error)

	// BalanceSheet aggregates the period's movements into a balance sheet
	BalanceSheet(ctx context.Context, tenant shared.TenantContext, query ReportQuery) (*reporting.BalanceSheet, error)
}

// PostingService accepts journal posting requests and entry lookups
type PostingService interface {
	// SubmitEntry validates a posting request and hands it to the async
	// posting pipeline
	SubmitEntry(ctx context.Context, request *shared.PostingRequest) error

	// GetEntryByID retrieves a posted journal entry
	// Returns nil if the entry is not found
	GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error)
}
