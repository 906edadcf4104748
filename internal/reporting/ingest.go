package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/domain/transaction"
)

// Ingestor fetches one source's rows for a company and period and normalizes
// them into movements. An ingestor never fails a whole report: the caller
// collects per-source errors and keeps going with the sources that succeeded.
type Ingestor interface {
	Source() shared.SourceType
	Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, kind shared.StatementKind) ([]Movement, error)
}

// JournalIngestor normalizes posted journal entries. Journal rows already
// carry explicit debit and credit sides, so they pass through unchanged;
// only the account identity and category are resolved here.
type JournalIngestor struct {
	logger   *slog.Logger
	repo     journal.Repository
	accounts *AccountIndex
}

// NewJournalIngestor creates an ingestor over posted journal entries
func NewJournalIngestor(logger *slog.Logger, repo journal.Repository, accounts *AccountIndex) *JournalIngestor {
	return &JournalIngestor{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// Source returns the journal source tag
func (i *JournalIngestor) Source() shared.SourceType {
	return shared.SourceJournal
}

// Ingest fetches and normalizes journal entries for the period
func (i *JournalIngestor) Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, _ shared.StatementKind) ([]Movement, error) {
	entries, err := i.repo.ListByCompanyAndRange(ctx, tenant.CompanyID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest journal entries: %w", err)
	}

	movements := make([]Movement, 0, len(entries))
	for _, e := range entries {
		acc, ok := i.accounts.Get(&e.AccountID)
		if !ok {
			i.logger.Warn("Journal entry references unknown account, skipping",
				"entry_id", e.ID.String(),
				"account_id", e.AccountID.String(),
			)
			continue
		}
		movements = append(movements, Movement{
			AccountID:    acc.ID.String(),
			AccountCode:  acc.Code,
			AccountName:  acc.Name,
			TypeLabel:    acc.TypeLabel,
			Category:     acc.Category(),
			CostCenterID: e.CostCenterID,
			Debit:        e.Debit,
			Credit:       e.Credit,
			Source:       shared.SourceJournal,
			Date:         e.EntryDate,
		})
	}

	return movements, nil
}

// expenseLikeRow is the shape shared by expenses, deductions and payrolls
// after the source-specific fields are stripped away.
type expenseLikeRow struct {
	accountID    *uuid.UUID
	costCenterID *uuid.UUID
	amount       decimal.Decimal
	date         time.Time
}

// normalizeExpenseLike applies the shared side rules for the three
// expense-bearing sources. A row linked to an asset or liability account is
// an outflow against that account: it lands on the credit side of an asset
// (reducing it) or of a liability (increasing the obligation), and feeds the
// balance sheet only. Every other row is treated as an expense debit, using
// the linked account's identity when it resolves and a placeholder line
// (prefix-<id> or prefix-NA) when it does not.
func normalizeExpenseLike(
	logger *slog.Logger,
	accounts *AccountIndex,
	kind shared.StatementKind,
	src shared.SourceType,
	prefix string,
	placeholderName string,
	rows []expenseLikeRow,
) []Movement {
	movements := make([]Movement, 0, len(rows))
	for _, row := range rows {
		if !row.amount.IsPositive() {
			continue
		}

		acc, ok := accounts.Get(row.accountID)
		if ok {
			category := acc.Category()
			if category == account.CategoryAsset || category == account.CategoryLiability {
				if kind == shared.StatementIncome {
					continue
				}
				movements = append(movements, Movement{
					AccountID:    acc.ID.String(),
					AccountCode:  acc.Code,
					AccountName:  acc.Name,
					TypeLabel:    acc.TypeLabel,
					Category:     category,
					CostCenterID: row.costCenterID,
					Credit:       row.amount,
					Source:       src,
					Date:         row.date,
				})
				continue
			}
			movements = append(movements, Movement{
				AccountID:    acc.ID.String(),
				AccountCode:  acc.Code,
				AccountName:  acc.Name,
				TypeLabel:    acc.TypeLabel,
				Category:     account.CategoryExpense,
				CostCenterID: row.costCenterID,
				Debit:        row.amount,
				Source:       src,
				Date:         row.date,
			})
			continue
		}

		code := prefix + "-NA"
		if row.accountID != nil {
			code = prefix + "-" + row.accountID.String()
			logger.Warn("Row references unknown account, using placeholder line",
				"source", string(src),
				"account_id", row.accountID.String(),
			)
		}
		movements = append(movements, Movement{
			AccountCode:  code,
			AccountName:  placeholderName,
			TypeLabel:    string(account.CategoryExpense),
			Category:     account.CategoryExpense,
			CostCenterID: row.costCenterID,
			Debit:        row.amount,
			Source:       src,
			Date:         row.date,
		})
	}
	return movements
}

// ExpenseIngestor normalizes operating expense rows
type ExpenseIngestor struct {
	logger   *slog.Logger
	repo     transaction.ExpenseRepository
	accounts *AccountIndex
}

// NewExpenseIngestor creates an ingestor over operating expenses
func NewExpenseIngestor(logger *slog.Logger, repo transaction.ExpenseRepository, accounts *AccountIndex) *ExpenseIngestor {
	return &ExpenseIngestor{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// Source returns the expense source tag
func (i *ExpenseIngestor) Source() shared.SourceType {
	return shared.SourceExpense
}

// Ingest fetches and normalizes expense rows for the period
func (i *ExpenseIngestor) Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, kind shared.StatementKind) ([]Movement, error) {
	expenses, err := i.repo.ListByCompanyAndRange(ctx, tenant.CompanyID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest expenses: %w", err)
	}

	rows := make([]expenseLikeRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, expenseLikeRow{
			accountID:    e.AccountID,
			costCenterID: e.CostCenterID,
			amount:       e.Amount,
			date:         e.ExpenseDate,
		})
	}

	return normalizeExpenseLike(i.logger, i.accounts, kind, shared.SourceExpense, "EXP", "Expenses", rows), nil
}

// DeductionIngestor normalizes payroll deduction rows
type DeductionIngestor struct {
	logger   *slog.Logger
	repo     transaction.DeductionRepository
	accounts *AccountIndex
}

// NewDeductionIngestor creates an ingestor over payroll deductions
func NewDeductionIngestor(logger *slog.Logger, repo transaction.DeductionRepository, accounts *AccountIndex) *DeductionIngestor {
	return &DeductionIngestor{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// Source returns the deduction source tag
func (i *DeductionIngestor) Source() shared.SourceType {
	return shared.SourceDeduction
}

// Ingest fetches and normalizes deduction rows for the period
func (i *DeductionIngestor) Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, kind shared.StatementKind) ([]Movement, error) {
	deductions, err := i.repo.ListByCompanyAndRange(ctx, tenant.CompanyID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest deductions: %w", err)
	}

	rows := make([]expenseLikeRow, 0, len(deductions))
	for _, d := range deductions {
		rows = append(rows, expenseLikeRow{
			accountID:    d.AccountID,
			costCenterID: d.CostCenterID,
			amount:       d.Amount,
			date:         d.DeductionDate,
		})
	}

	return normalizeExpenseLike(i.logger, i.accounts, kind, shared.SourceDeduction, "DED", "Payroll deductions", rows), nil
}

// PayrollIngestor normalizes salary payment rows
type PayrollIngestor struct {
	logger   *slog.Logger
	repo     transaction.PayrollRepository
	accounts *AccountIndex
}

// NewPayrollIngestor creates an ingestor over payroll runs
func NewPayrollIngestor(logger *slog.Logger, repo transaction.PayrollRepository, accounts *AccountIndex) *PayrollIngestor {
	return &PayrollIngestor{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// Source returns the payroll source tag
func (i *PayrollIngestor) Source() shared.SourceType {
	return shared.SourcePayroll
}

// Ingest fetches and normalizes payroll rows for the period
func (i *PayrollIngestor) Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, kind shared.StatementKind) ([]Movement, error) {
	payrolls, err := i.repo.ListByCompanyAndRange(ctx, tenant.CompanyID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest payrolls: %w", err)
	}

	rows := make([]expenseLikeRow, 0, len(payrolls))
	for _, p := range payrolls {
		rows = append(rows, expenseLikeRow{
			accountID:    p.AccountID,
			costCenterID: p.CostCenterID,
			amount:       p.Amount,
			date:         p.PayrollDate,
		})
	}

	return normalizeExpenseLike(i.logger, i.accounts, kind, shared.SourcePayroll, "PAY", "Payroll", rows), nil
}

// InvoiceIngestor normalizes sales invoice rows. Invoices default to the
// credit side of a revenue line; an invoice linked to an asset account is a
// receivable increase instead and lands on the debit side of that account.
type InvoiceIngestor struct {
	logger   *slog.Logger
	repo     transaction.InvoiceRepository
	accounts *AccountIndex
}

// NewInvoiceIngestor creates an ingestor over sales invoices
func NewInvoiceIngestor(logger *slog.Logger, repo transaction.InvoiceRepository, accounts *AccountIndex) *InvoiceIngestor {
	return &InvoiceIngestor{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// Source returns the invoice source tag
func (i *InvoiceIngestor) Source() shared.SourceType {
	return shared.SourceInvoice
}

// Ingest fetches and normalizes invoice rows for the period
func (i *InvoiceIngestor) Ingest(ctx context.Context, tenant shared.TenantContext, period shared.DateRange, _ shared.StatementKind) ([]Movement, error) {
	invoices, err := i.repo.ListByCompanyAndRange(ctx, tenant.CompanyID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest invoices: %w", err)
	}

	movements := make([]Movement, 0, len(invoices))
	for _, inv := range invoices {
		if !inv.Total.IsPositive() {
			continue
		}

		acc, ok := i.accounts.Get(inv.AccountID)
		if ok {
			category := acc.Category()
			if category == account.CategoryAsset {
				movements = append(movements, Movement{
					AccountID:    acc.ID.String(),
					AccountCode:  acc.Code,
					AccountName:  acc.Name,
					TypeLabel:    acc.TypeLabel,
					Category:     category,
					CostCenterID: inv.CostCenterID,
					Debit:        inv.Total,
					Source:       shared.SourceInvoice,
					Date:         inv.InvoiceDate,
				})
				continue
			}
			movements = append(movements, Movement{
				AccountID:    acc.ID.String(),
				AccountCode:  acc.Code,
				AccountName:  acc.Name,
				TypeLabel:    acc.TypeLabel,
				Category:     account.CategoryRevenue,
				CostCenterID: inv.CostCenterID,
				Credit:       inv.Total,
				Source:       shared.SourceInvoice,
				Date:         inv.InvoiceDate,
			})
			continue
		}

		code := "INV-NA"
		if inv.AccountID != nil {
			code = "INV-" + inv.AccountID.String()
			i.logger.Warn("Invoice references unknown account, using placeholder line",
				"invoice_id", inv.ID,
				"account_id", inv.AccountID.String(),
			)
		}
		movements = append(movements, Movement{
			AccountCode:  code,
			AccountName:  "Sales revenue",
			TypeLabel:    string(account.CategoryRevenue),
			Category:     account.CategoryRevenue,
			CostCenterID: inv.CostCenterID,
			Credit:       inv.Total,
			Source:       shared.SourceInvoice,
			Date:         inv.InvoiceDate,
		})
	}

	return movements, nil
}
