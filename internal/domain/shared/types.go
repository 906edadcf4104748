package shared

// SourceType tags the transactional origin of a movement or journal entry
type SourceType string

const (
	SourceJournal   SourceType = "journal"
	SourceExpense   SourceType = "expense"
	SourceDeduction SourceType = "deduction"
	SourcePayroll   SourceType = "payroll"
	SourceInvoice   SourceType = "invoice"
)

// AllSourceTypes lists every source in ingestion order
var AllSourceTypes = []SourceType{
	SourceJournal,
	SourceExpense,
	SourceDeduction,
	SourcePayroll,
	SourceInvoice,
}

// SourceFilterAll disables source filtering on a report request
const SourceFilterAll = "all"

// ValidSourceFilter reports whether the value is "all" or a known source type
func ValidSourceFilter(value string) bool {
	if value == SourceFilterAll {
		return true
	}
	for _, s := range AllSourceTypes {
		if value == string(s) {
			return true
		}
	}
	return false
}

// StatementKind selects which statement variant an ingestion run serves
type StatementKind string

const (
	StatementIncome       StatementKind = "income_statement"
	StatementBalanceSheet StatementKind = "balance_sheet"
)

// OutboxStatus defines posted-event publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
