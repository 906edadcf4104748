package costcenter

import (
	"context"

	"github.com/google/uuid"
)

// CostCenter is a grouping dimension (branch, department) attached to
// transactional rows for sub-reporting. It has no behavior of its own.
type CostCenter struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// Repository defines read access to a company's cost centers
type Repository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*CostCenter, error)
}
