// Package postgres provides PostgreSQL implementations of the transactional
// source-row repositories and the posted-event outbox. Each source table is
// read through its own repository so one broken query degrades only that
// source's ingestion.
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

// ExpenseRepository implements transaction.ExpenseRepository for PostgreSQL
type ExpenseRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewExpenseRepository creates a new PostgreSQL expense repository
func NewExpenseRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.ExpenseRepository {
	return &ExpenseRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// ListByCompanyAndRange retrieves expenses dated within [from, to], inclusive
// on both ends. Rows are ordered by date then id for deterministic iteration.
func (r *ExpenseRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Expense, error) {
	query := `
		SELECT id, company_id, account_id, cost_center_id, amount, description, expense_date
		FROM expenses
		WHERE company_id = $1 AND expense_date BETWEEN $2 AND $3
		ORDER BY expense_date, id
	`

	rows, err := r.querier.Query(ctx, query, companyID, from, to)
	if err != nil {
		r.logger.Error("Failed to list expenses", "company_id", companyID.String(), "error", err)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*transaction.Expense
	for rows.Next() {
		var (
			e            transaction.Expense
			accountID    uuid.NullUUID
			costCenterID uuid.NullUUID
			amount       float64
		)
		err := rows.Scan(
			&e.ID,
			&e.CompanyID,
			&accountID,
			&costCenterID,
			&amount,
			&e.Description,
			&e.ExpenseDate,
		)
		if err != nil {
			r.logger.Error("Failed to scan expense row", "error", err)
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		if accountID.Valid {
			e.AccountID = &accountID.UUID
		}
		if costCenterID.Valid {
			e.CostCenterID = &costCenterID.UUID
		}
		e.Amount = decimal.NewFromFloat(amount)
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over expense rows", "error", err)
		return nil, fmt.Errorf("error iterating over expense rows: %w", err)
	}

	return expenses, nil
}
