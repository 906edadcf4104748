package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hisab-backoffice/internal/config"
	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/costcenter"
	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/domain/transaction"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockCostCenterRepository struct {
	mock.Mock
}

func (m *MockCostCenterRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*costcenter.CostCenter, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*costcenter.CostCenter), args.Error(1)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*journal.Entry, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Expense, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Expense), args.Error(1)
}

type MockDeductionRepository struct {
	mock.Mock
}

func (m *MockDeductionRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Deduction, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Deduction), args.Error(1)
}

type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Payroll, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Payroll), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Invoice, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Invoice), args.Error(1)
}

type reportMocks struct {
	accounts    *MockAccountRepository
	costCenters *MockCostCenterRepository
	journal     *MockJournalRepository
	expenses    *MockExpenseRepository
	deductions  *MockDeductionRepository
	payrolls    *MockPayrollRepository
	invoices    *MockInvoiceRepository
}

func newReportService(t *testing.T) (ReportService, *reportMocks) {
	t.Helper()

	m := &reportMocks{
		accounts:    new(MockAccountRepository),
		costCenters: new(MockCostCenterRepository),
		journal:     new(MockJournalRepository),
		expenses:    new(MockExpenseRepository),
		deductions:  new(MockDeductionRepository),
		payrolls:    new(MockPayrollRepository),
		invoices:    new(MockInvoiceRepository),
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := &config.ReportingConfig{ZeroEpsilon: "0.01", TopAccounts: 5}

	svc, err := NewReportService(logger, cfg,
		m.accounts, m.costCenters, m.journal,
		m.expenses, m.deductions, m.payrolls, m.invoices,
	)
	require.NoError(t, err)
	return svc, m
}

func TestNewReportService_InvalidEpsilon(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := &config.ReportingConfig{ZeroEpsilon: "not-a-number", TopAccounts: 5}

	_, err := NewReportService(logger, cfg, nil, nil, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestReportService_IncomeStatement(t *testing.T) {
	tenant := shared.TenantContext{CompanyID: uuid.New()}
	period := shared.DateRange{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	query := ReportQuery{Period: period, Source: shared.SourceFilterAll}

	sales := &account.Account{ID: uuid.New(), CompanyID: tenant.CompanyID, Code: "4001", Name: "Sales", TypeLabel: "Revenue"}
	rent := &account.Account{ID: uuid.New(), CompanyID: tenant.CompanyID, Code: "5001", Name: "Rent", TypeLabel: "Expenses"}

	t.Run("aggregates all five sources", func(t *testing.T) {
		svc, m := newReportService(t)

		m.accounts.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*account.Account{sales, rent}, nil)
		m.costCenters.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*costcenter.CostCenter{}, nil)
		m.journal.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*journal.Entry{}, nil)
		m.expenses.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Expense{
			{ID: 1, CompanyID: tenant.CompanyID, AccountID: &rent.ID, Amount: decimal.NewFromInt(400), ExpenseDate: period.From},
		}, nil)
		m.deductions.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Deduction{}, nil)
		m.payrolls.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Payroll{}, nil)
		m.invoices.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Invoice{
			{ID: 1, CompanyID: tenant.CompanyID, AccountID: &sales.ID, Total: decimal.NewFromInt(1000), InvoiceDate: period.From},
		}, nil)

		statement, err := svc.IncomeStatement(context.Background(), tenant, query)
		require.NoError(t, err)

		assert.Equal(t, 1000.0, statement.Stats.TotalRevenue)
		assert.Equal(t, 400.0, statement.Stats.TotalExpenses)
		assert.Equal(t, 600.0, statement.Stats.NetIncome)
		assert.Equal(t, 60.0, statement.Stats.ProfitMargin)
		assert.Empty(t, statement.FailedSources)

		m.accounts.AssertExpectations(t)
		m.invoices.AssertExpectations(t)
	})

	t.Run("failing source is captured, report still builds", func(t *testing.T) {
		svc, m := newReportService(t)

		m.accounts.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*account.Account{sales}, nil)
		m.costCenters.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*costcenter.CostCenter{}, nil)
		m.journal.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*journal.Entry{}, nil)
		m.expenses.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return(nil, assert.AnError)
		m.deductions.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Deduction{}, nil)
		m.payrolls.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Payroll{}, nil)
		m.invoices.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Invoice{
			{ID: 1, CompanyID: tenant.CompanyID, AccountID: &sales.ID, Total: decimal.NewFromInt(1000), InvoiceDate: period.From},
		}, nil)

		statement, err := svc.IncomeStatement(context.Background(), tenant, query)
		require.NoError(t, err)

		require.Len(t, statement.FailedSources, 1)
		assert.Equal(t, "expense", statement.FailedSources[0].Source)
		assert.Equal(t, 1000.0, statement.Stats.TotalRevenue)
	})

	t.Run("source filter runs only the named ingestor", func(t *testing.T) {
		svc, m := newReportService(t)

		filtered := query
		filtered.Source = string(shared.SourceInvoice)

		m.accounts.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*account.Account{sales}, nil)
		m.costCenters.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*costcenter.CostCenter{}, nil)
		m.invoices.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Invoice{}, nil)

		_, err := svc.IncomeStatement(context.Background(), tenant, filtered)
		require.NoError(t, err)

		m.journal.AssertNotCalled(t, "ListByCompanyAndRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.expenses.AssertNotCalled(t, "ListByCompanyAndRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.invoices.AssertExpectations(t)
	})

	t.Run("chart of accounts failure fails the report", func(t *testing.T) {
		svc, m := newReportService(t)

		m.accounts.On("ListByCompany", mock.Anything, tenant.CompanyID).Return(nil, assert.AnError)
		m.costCenters.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*costcenter.CostCenter{}, nil)

		_, err := svc.IncomeStatement(context.Background(), tenant, query)
		assert.Error(t, err)
	})
}

func TestReportService_BalanceSheet(t *testing.T) {
	tenant := shared.TenantContext{CompanyID: uuid.New()}
	period := shared.DateRange{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	query := ReportQuery{Period: period, Source: shared.SourceFilterAll}

	cash := &account.Account{ID: uuid.New(), CompanyID: tenant.CompanyID, Code: "1001", Name: "Cash", TypeLabel: "Assets"}
	sales := &account.Account{ID: uuid.New(), CompanyID: tenant.CompanyID, Code: "4001", Name: "Sales", TypeLabel: "Revenue"}

	svc, m := newReportService(t)

	m.accounts.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*account.Account{cash, sales}, nil)
	m.costCenters.On("ListByCompany", mock.Anything, tenant.CompanyID).Return([]*costcenter.CostCenter{}, nil)
	m.journal.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*journal.Entry{
		{ID: uuid.New(), CompanyID: tenant.CompanyID, AccountID: cash.ID, Debit: decimal.NewFromInt(1000), EntryDate: period.From, SourceType: shared.SourceJournal},
	}, nil)
	m.expenses.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Expense{}, nil)
	m.deductions.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Deduction{}, nil)
	m.payrolls.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Payroll{}, nil)
	m.invoices.On("ListByCompanyAndRange", mock.Anything, tenant.CompanyID, period.From, period.To).Return([]*transaction.Invoice{
		{ID: 1, CompanyID: tenant.CompanyID, AccountID: &sales.ID, Total: decimal.NewFromInt(1000), InvoiceDate: period.From},
	}, nil)

	sheet, err := svc.BalanceSheet(context.Background(), tenant, query)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, sheet.Stats.TotalAssets)
	assert.Equal(t, 1000.0, sheet.Stats.NetIncome)
	assert.True(t, sheet.Stats.IsBalanced)
	require.Len(t, sheet.Assets, 1)
	assert.Equal(t, "1001", sheet.Assets[0].Code)
}
