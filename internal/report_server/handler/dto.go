package handler

// StatementQueryParams represents the query string of a statement request
type StatementQueryParams struct {
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	Search   string `form:"search"`
	Source   string `form:"source,default=all"`
}

// CreateJournalEntryRequest represents a request to post a journal entry
type CreateJournalEntryRequest struct {
	AccountID    string  `json:"account_id" binding:"required,uuid"`
	CostCenterID string  `json:"cost_center_id" binding:"omitempty,uuid"`
	Debit        float64 `json:"debit" binding:"min=0"`
	Credit       float64 `json:"credit" binding:"min=0"`
	EntryDate    string  `json:"entry_date" binding:"required"`
	SourceType   string  `json:"source_type" binding:"required"`
	Description  string  `json:"description"`
}

// JournalEntryResponse represents a posted journal entry in API responses
type JournalEntryResponse struct {
	EntryID      string  `json:"entry_id"`
	CompanyID    string  `json:"company_id"`
	AccountID    string  `json:"account_id"`
	CostCenterID string  `json:"cost_center_id,omitempty"`
	Debit        float64 `json:"debit"`
	Credit       float64 `json:"credit"`
	EntryDate    string  `json:"entry_date"`
	SourceType   string  `json:"source_type"`
	Description  string  `json:"description,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
