package reporting

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/shared"
)

// BuildOptions tunes statement building. Epsilon is the display threshold:
// line items whose absolute net is at or below it are hidden from the
// statement sections. TopN caps the chart composition series.
type BuildOptions struct {
	Epsilon decimal.Decimal
	TopN    int
	Search  string
}

// StatementLine is one account line as rendered in a statement section
type StatementLine struct {
	AccountID   string             `json:"accountId,omitempty"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	TypeLabel   string             `json:"typeLabel"`
	Category    string             `json:"category"`
	NetAmount   float64            `json:"netAmount"`
	DebitTotal  float64            `json:"debitTotal"`
	CreditTotal float64            `json:"creditTotal"`
	EntryCount  int                `json:"entryCount"`
	SourceTypes []string           `json:"sourceTypes"`
	CostCenters []CostCenterAmount `json:"costCenters,omitempty"`
}

// CostCenterAmount is a per-cost-center sub-total on a statement line
type CostCenterAmount struct {
	ID     string  `json:"id,omitempty"`
	Code   string  `json:"code,omitempty"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// AccountAmount is a code/name/amount triple used by chart series
type AccountAmount struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SourceFailure reports one source that could not be ingested. Statements
// are still produced from the sources that succeeded.
type SourceFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Period is the echoed reporting period, dates only
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func newPeriod(r shared.DateRange) Period {
	return Period{
		From: r.From.Format("2006-01-02"),
		To:   r.To.Format("2006-01-02"),
	}
}

// money rounds a decimal to two places for presentation
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toStatementLine(item *LineItem) StatementLine {
	sources := make([]string, 0, len(item.Sources))
	for _, s := range item.Sources {
		sources = append(sources, string(s))
	}

	var centers []CostCenterAmount
	for _, cc := range item.CostCenters {
		centers = append(centers, CostCenterAmount{
			ID:     cc.ID,
			Code:   cc.Code,
			Name:   cc.Name,
			Amount: money(cc.Amount),
		})
	}

	return StatementLine{
		AccountID:   item.AccountID,
		Code:        item.Code,
		Name:        item.Name,
		TypeLabel:   item.TypeLabel,
		Category:    string(item.Category),
		NetAmount:   money(item.Net),
		DebitTotal:  money(item.DebitTotal),
		CreditTotal: money(item.CreditTotal),
		EntryCount:  item.EntryCount,
		SourceTypes: sources,
		CostCenters: centers,
	}
}

// visible reports whether the line clears the epsilon display threshold
func visible(item *LineItem, epsilon decimal.Decimal) bool {
	return item.Net.Abs().GreaterThan(epsilon)
}

// matchesSearch is a case-insensitive substring match over code and name
func matchesSearch(item *LineItem, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Code), needle) ||
		strings.Contains(strings.ToLower(item.Name), needle)
}

// sortByNetDesc orders lines by net amount descending, account code
// ascending on ties, so equal inputs always render byte-identical JSON.
func sortByNetDesc(items []*LineItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Net.Equal(items[j].Net) {
			return items[i].Net.GreaterThan(items[j].Net)
		}
		return items[i].Code < items[j].Code
	})
}

// sortByMagnitudeDesc orders lines by absolute net descending, account code
// ascending on ties.
func sortByMagnitudeDesc(items []*LineItem) {
	sort.Slice(items, func(i, j int) bool {
		ai, aj := items[i].Net.Abs(), items[j].Net.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return items[i].Code < items[j].Code
	})
}

func toLines(items []*LineItem) []StatementLine {
	lines := make([]StatementLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, toStatementLine(item))
	}
	return lines
}

// topAccounts takes the first n already-sorted items as a chart series
func topAccounts(items []*LineItem, n int) []AccountAmount {
	if n > len(items) {
		n = len(items)
	}
	series := make([]AccountAmount, 0, n)
	for _, item := range items[:n] {
		series = append(series, AccountAmount{
			Code:   item.Code,
			Name:   item.Name,
			Amount: money(item.Net),
		})
	}
	return series
}

// sourceTypeCounts tallies normalized movements per source
func sourceTypeCounts(movements []Movement) map[string]int {
	counts := make(map[string]int)
	for _, m := range movements {
		counts[string(m.Source)]++
	}
	return counts
}
