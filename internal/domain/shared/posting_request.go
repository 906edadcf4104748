package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("debit and credit must be non-negative and not both zero")
	ErrTwoSidedAmount = errors.New("a posting must be either a debit or a credit, not both")
	ErrUnknownSource  = errors.New("unknown source type")
	ErrMissingAccount = errors.New("posting requires an account reference")
)

// PostingRequest defines a Kafka message asking the processor to post a
// journal entry. Recording flows (invoices, payroll migrations, vouchers)
// publish these instead of writing to the journal store directly.
type PostingRequest struct {
	EntryID       uuid.UUID       `json:"entry_id"`
	CompanyID     uuid.UUID       `json:"company_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	CostCenterID  *uuid.UUID      `json:"cost_center_id,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     time.Time       `json:"entry_date"`
	SourceType    SourceType      `json:"source_type"`
	Description   string          `json:"description,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Validate checks the structural invariants of a posting request
func (r *PostingRequest) Validate() error {
	if r.AccountID == uuid.Nil {
		return ErrMissingAccount
	}
	if r.Debit.IsNegative() || r.Credit.IsNegative() {
		return ErrInvalidAmount
	}
	if r.Debit.IsZero() && r.Credit.IsZero() {
		return ErrInvalidAmount
	}
	if r.Debit.IsPositive() && r.Credit.IsPositive() {
		return ErrTwoSidedAmount
	}
	valid := false
	for _, s := range AllSourceTypes {
		if r.SourceType == s {
			valid = true
			break
		}
	}
	if !valid {
		return ErrUnknownSource
	}
	return nil
}
