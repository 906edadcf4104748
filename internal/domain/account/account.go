package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceNature is the normal balance side of an account
type BalanceNature string

const (
	NatureDebit  BalanceNature = "debit"
	NatureCredit BalanceNature = "credit"
)

// Account is one row of a company's chart of accounts. Accounts are
// maintained by the settings flows of the back office; the reporting side
// only ever reads them, and transactional rows reference them by id.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	CompanyID      uuid.UUID       `json:"company_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	TypeLabel      string          `json:"type_label"` // free text, localized (Arabic or English)
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Nature         BalanceNature   `json:"nature"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Category returns the semantic category of the account's type label
func (a *Account) Category() Category {
	return Classify(a.TypeLabel)
}
