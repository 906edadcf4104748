package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the chart of accounts
type Repository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}
