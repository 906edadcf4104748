package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/transaction"
	"github.com/hisab-backoffice/internal/platform/persistence"
)

// PayrollRepository implements transaction.PayrollRepository for PostgreSQL
type PayrollRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewPayrollRepository creates a new PostgreSQL payroll repository
func NewPayrollRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.PayrollRepository {
	return &PayrollRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// ListByCompanyAndRange retrieves payroll rows dated within [from, to],
// inclusive on both ends.
func (r *PayrollRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Payroll, error) {
	query := `
		SELECT id, company_id, account_id, cost_center_id, amount, employee_name, payroll_date
		FROM payrolls
		WHERE company_id = $1 AND payroll_date BETWEEN $2 AND $3
		ORDER BY payroll_date, id
	`

	rows, err := r.querier.Query(ctx, query, companyID, from, to)
	if err != nil {
		r.logger.Error("Failed to list payrolls", "company_id", companyID.String(), "error", err)
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []*transaction.Payroll
	for rows.Next() {
		var (
			p            transaction.Payroll
			accountID    uuid.NullUUID
			costCenterID uuid.NullUUID
			amount       float64
		)
		err := rows.Scan(
			&p.ID,
			&p.CompanyID,
			&accountID,
			&costCenterID,
			&amount,
			&p.EmployeeName,
			&p.PayrollDate,
		)
		if err != nil {
			r.logger.Error("Failed to scan payroll row", "error", err)
			return nil, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		if accountID.Valid {
			p.AccountID = &accountID.UUID
		}
		if costCenterID.Valid {
			p.CostCenterID = &costCenterID.UUID
		}
		p.Amount = decimal.NewFromFloat(amount)
		payrolls = append(payrolls, &p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over payroll rows", "error", err)
		return nil, fmt.Errorf("error iterating over payroll rows: %w", err)
	}

	return payrolls, nil
}
