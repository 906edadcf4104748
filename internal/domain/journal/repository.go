package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository manages journal entry persistence
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListByCompanyAndRange returns entries dated within [from, to],
	// inclusive on both ends.
	ListByCompanyAndRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*Entry, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// ErrEntryNotFound indicates missing journal entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "journal entry not found: " + e.EntryID.String()
}

// Is matches any ErrEntryNotFound when the target carries a nil id
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}

// ErrDuplicateEntry indicates entry id uniqueness violation
type ErrDuplicateEntry struct {
	EntryID uuid.UUID
}

func (e ErrDuplicateEntry) Error() string {
	return "duplicate journal entry: " + e.EntryID.String()
}

// Is matches any ErrDuplicateEntry when the target carries a nil id
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}
