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

// InvoiceRepository implements transaction.InvoiceRepository for PostgreSQL
type InvoiceRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL invoice repository
func NewInvoiceRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.InvoiceRepository {
	return &InvoiceRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// ListByCompanyAndRange retrieves sales invoices dated within [from, to],
// inclusive on both ends.
func (r *InvoiceRepository) ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*transaction.Invoice, error) {
	query := `
		SELECT id, company_id, account_id, cost_center_id, total, customer_name, invoice_date
		FROM invoices
		WHERE company_id = $1 AND invoice_date BETWEEN $2 AND $3
		ORDER BY invoice_date, id
	`

	rows, err := r.querier.Query(ctx, query, companyID, from, to)
	if err != nil {
		r.logger.Error("Failed to list invoices", "company_id", companyID.String(), "error", err)
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*transaction.Invoice
	for rows.Next() {
		var (
			inv          transaction.Invoice
			accountID    uuid.NullUUID
			costCenterID uuid.NullUUID
			total        float64
		)
		err := rows.Scan(
			&inv.ID,
			&inv.CompanyID,
			&accountID,
			&costCenterID,
			&total,
			&inv.CustomerName,
			&inv.InvoiceDate,
		)
		if err != nil {
			r.logger.Error("Failed to scan invoice row", "error", err)
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		if accountID.Valid {
			inv.AccountID = &accountID.UUID
		}
		if costCenterID.Valid {
			inv.CostCenterID = &costCenterID.UUID
		}
		inv.Total = decimal.NewFromFloat(total)
		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over invoice rows", "error", err)
		return nil, fmt.Errorf("error iterating over invoice rows: %w", err)
	}

	return invoices, nil
}
