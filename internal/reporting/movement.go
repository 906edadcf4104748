// Package reporting implements the financial statement core: normalizing
// rows from the five transactional sources into movements, aggregating them
// into per-account line items and building the income statement and balance
// sheet payloads.
package reporting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/shared"
)

// Movement is one normalized row contributed by a source. The sign/side
// decision (which side of the account the source row lands on) is made by
// the ingestor that produced it; the aggregator only accumulates.
type Movement struct {
	AccountID    string // resolved account id, empty for placeholder rows
	AccountCode  string
	AccountName  string
	TypeLabel    string
	Category     account.Category
	CostCenterID *uuid.UUID
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Source       shared.SourceType
	Date         time.Time
}

// Net returns the movement's contribution in the category's increase
// direction: debit−credit for asset/expense accounts, credit−debit for
// liability/equity/revenue accounts.
func (m Movement) Net() decimal.Decimal {
	if m.Category.DebitIncreasing() {
		return m.Debit.Sub(m.Credit)
	}
	return m.Credit.Sub(m.Debit)
}

// AccountIndex resolves account references during ingestion
type AccountIndex struct {
	byID map[uuid.UUID]*account.Account
}

// NewAccountIndex builds an index over a company's chart of accounts
func NewAccountIndex(accounts []*account.Account) *AccountIndex {
	byID := make(map[uuid.UUID]*account.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &AccountIndex{byID: byID}
}

// Get resolves an optional account reference
func (idx *AccountIndex) Get(id *uuid.UUID) (*account.Account, bool) {
	if id == nil {
		return nil, false
	}
	a, ok := idx.byID[*id]
	return a, ok
}
