package shared

import (
	"time"

	"github.com/google/uuid"
)

// TenantContext carries the resolved company identity for a request.
// It is resolved once at the HTTP boundary by the session middleware and
// passed explicitly into every service call, never read mid-computation.
type TenantContext struct {
	CompanyID uuid.UUID
}

// DateRange is an inclusive [From, To] reporting period
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range, both ends inclusive
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
