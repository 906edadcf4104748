package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/config"
	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/costcenter"
	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/domain/transaction"
	"github.com/hisab-backoffice/internal/reporting"
)

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	logger         *slog.Logger
	accountRepo    account.Repository
	costCenterRepo costcenter.Repository
	journalRepo    journal.Repository
	expenseRepo    transaction.ExpenseRepository
	deductionRepo  transaction.DeductionRepository
	payrollRepo    transaction.PayrollRepository
	invoiceRepo    transaction.InvoiceRepository
	epsilon        decimal.Decimal
	topAccounts    int
}

// NewReportService creates a new report service. The epsilon string comes
// straight from configuration and must parse as a decimal.
func NewReportService(
	logger *slog.Logger,
	cfg *config.ReportingConfig,
	accountRepo account.Repository,
	costCenterRepo costcenter.Repository,
	journalRepo journal.Repository,
	expenseRepo transaction.ExpenseRepository,
	deductionRepo transaction.DeductionRepository,
	payrollRepo transaction.PayrollRepository,
	invoiceRepo transaction.InvoiceRepository,
) (ReportService, error) {
	epsilon, err := decimal.NewFromString(cfg.ZeroEpsilon)
	if err != nil {
		return nil, fmt.Errorf("invalid reporting epsilon %q: %w", cfg.ZeroEpsilon, err)
	}

	return &ReportServiceImpl{
		logger:         logger,
		accountRepo:    accountRepo,
		costCenterRepo: costCenterRepo,
		journalRepo:    journalRepo,
		expenseRepo:    expenseRepo,
		deductionRepo:  deductionRepo,
		payrollRepo:    payrollRepo,
		invoiceRepo:    invoiceRepo,
		epsilon:        epsilon,
		topAccounts:    cfg.TopAccounts,
	}, nil
}

// IncomeStatement aggregates the period's movements into an income statement
func (s *ReportServiceImpl) IncomeStatement(ctx context.Context, tenant shared.TenantContext, query ReportQuery) (*reporting.IncomeStatement, error) {
	agg, movements, failures, err := s.runIngestion(ctx, tenant, query, shared.StatementIncome)
	if err != nil {
		return nil, err
	}

	opts := reporting.BuildOptions{
		Epsilon: s.epsilon,
		TopN:    s.topAccounts,
		Search:  query.Search,
	}
	return reporting.BuildIncomeStatement(agg, movements, failures, query.Period, opts), nil
}

// BalanceSheet aggregates the period's movements into a balance sheet
func (s *ReportServiceImpl) BalanceSheet(ctx context.Context, tenant shared.TenantContext, query ReportQuery) (*reporting.BalanceSheet, error) {
	agg, movements, failures, err := s.runIngestion(ctx, tenant, query, shared.StatementBalanceSheet)
	if err != nil {
		return nil, err
	}

	opts := reporting.BuildOptions{
		Epsilon: s.epsilon,
		TopN:    s.topAccounts,
		Search:  query.Search,
	}
	return reporting.BuildBalanceSheet(agg, movements, failures, query.Period, opts), nil
}

// runIngestion fetches the company dimensions, runs the selected ingestors
// and folds their movements. A failing source is captured and skipped; a
// failing dimension fetch fails the whole report since nothing can be
// classified without the chart of accounts.
func (s *ReportServiceImpl) runIngestion(
	ctx context.Context,
	tenant shared.TenantContext,
	query ReportQuery,
	kind shared.StatementKind,
) (*reporting.Aggregator, []reporting.Movement, []reporting.SourceFailure, error) {
	accounts, centers, err := s.fetchDimensions(ctx, tenant)
	if err != nil {
		return nil, nil, nil, err
	}

	index := reporting.NewAccountIndex(accounts)
	agg := reporting.NewAggregator(centers)

	ingestors := []reporting.Ingestor{
		reporting.NewJournalIngestor(s.logger, s.journalRepo, index),
		reporting.NewExpenseIngestor(s.logger, s.expenseRepo, index),
		reporting.NewDeductionIngestor(s.logger, s.deductionRepo, index),
		reporting.NewPayrollIngestor(s.logger, s.payrollRepo, index),
		reporting.NewInvoiceIngestor(s.logger, s.invoiceRepo, index),
	}

	var movements []reporting.Movement
	var failures []reporting.SourceFailure
	for _, ingestor := range ingestors {
		if query.Source != shared.SourceFilterAll && query.Source != string(ingestor.Source()) {
			continue
		}

		batch, err := ingestor.Ingest(ctx, tenant, query.Period, kind)
		if err != nil {
			s.logger.Error("Source ingestion failed",
				"source", string(ingestor.Source()),
				"company_id", tenant.CompanyID.String(),
				"error", err,
			)
			failures = append(failures, reporting.SourceFailure{
				Source: string(ingestor.Source()),
				Error:  err.Error(),
			})
			continue
		}

		agg.AddAll(batch)
		movements = append(movements, batch...)
	}

	return agg, movements, failures, nil
}

// fetchDimensions loads the chart of accounts and cost centers concurrently
func (s *ReportServiceImpl) fetchDimensions(ctx context.Context, tenant shared.TenantContext) ([]*account.Account, []*costcenter.CostCenter, error) {
	var (
		wg       sync.WaitGroup
		accounts []*account.Account
		centers  []*costcenter.CostCenter
		accErr   error
		ccErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		accounts, accErr = s.accountRepo.ListByCompany(ctx, tenant.CompanyID)
	}()
	go func() {
		defer wg.Done()
		centers, ccErr = s.costCenterRepo.ListByCompany(ctx, tenant.CompanyID)
	}()
	wg.Wait()

	if accErr != nil {
		return nil, nil, fmt.Errorf("failed to load chart of accounts: %w", accErr)
	}
	if ccErr != nil {
		return nil, nil, fmt.Errorf("failed to load cost centers: %w", ccErr)
	}

	return accounts, centers, nil
}
