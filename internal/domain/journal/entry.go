package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/shared"
)

// Entry is a posted debit/credit movement against an account. Entries are
// immutable once posted; recording flows create them through the posting
// processor, never update them.
type Entry struct {
	ID            uuid.UUID         `json:"entry_id"`
	CompanyID     uuid.UUID         `json:"company_id"`
	AccountID     uuid.UUID         `json:"account_id"`
	CostCenterID  *uuid.UUID        `json:"cost_center_id,omitempty"`
	Debit         decimal.Decimal   `json:"debit"`
	Credit        decimal.Decimal   `json:"credit"`
	EntryDate     time.Time         `json:"entry_date"`
	SourceType    shared.SourceType `json:"source_type"`
	Description   string            `json:"description,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewEntry builds a journal entry from a validated posting request
func NewEntry(req *shared.PostingRequest) *Entry {
	return &Entry{
		ID:            req.EntryID,
		CompanyID:     req.CompanyID,
		AccountID:     req.AccountID,
		CostCenterID:  req.CostCenterID,
		Debit:         req.Debit,
		Credit:        req.Credit,
		EntryDate:     req.EntryDate,
		SourceType:    req.SourceType,
		Description:   req.Description,
		CorrelationID: req.CorrelationID,
		CreatedAt:     time.Now().UTC(),
	}
}
