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

// DeductionRepository implements transaction.DeductionRepository for PostgreSQL
type DeductionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewDeductionRepository creates a new PostgreSQL deduction repository
func NewDeductionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.DeductionRepository {
	return &DeductionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// ListByCompanyAndRange retrieves payroll deductions dated within [from, to],
// inclusive on both ends.
func (r *DeductionRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Deduction, error) {
	query := `
		SELECT id, company_id, account_id, cost_center_id, amount, reason, deduction_date
		FROM deductions
		WHERE company_id = $1 AND deduction_date BETWEEN $2 AND $3
		ORDER BY deduction_date, id
	`

	rows, err := r.querier.Query(ctx, query, companyID, from, to)
	if err != nil {
		r.logger.Error("Failed to list deductions", "company_id", companyID.String(), "error", err)
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []*transaction.Deduction
	for rows.Next() {
		var (
			d            transaction.Deduction
			accountID    uuid.NullUUID
			costCenterID uuid.NullUUID
			amount       float64
		)
		err := rows.Scan(
			&d.ID,
			&d.CompanyID,
			&accountID,
			&costCenterID,
			&amount,
			&d.Reason,
			&d.DeductionDate,
		)
		if err != nil {
			r.logger.Error("Failed to scan deduction row", "error", err)
			return nil, fmt.Errorf("failed to scan deduction row: %w", err)
		}
		if accountID.Valid {
			d.AccountID = &accountID.UUID
		}
		if costCenterID.Valid {
			d.CostCenterID = &costCenterID.UUID
		}
		d.Amount = decimal.NewFromFloat(amount)
		deductions = append(deductions, &d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over deduction rows", "error", err)
		return nil, fmt.Errorf("error iterating over deduction rows: %w", err)
	}

	return deductions, nil
}
