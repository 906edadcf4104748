package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/shared"
)

// IncomeStatement is the full income statement payload
type IncomeStatement struct {
	Revenues         []StatementLine      `json:"revenues"`
	Expenses         []StatementLine      `json:"expenses"`
	Stats            IncomeStatementStats `json:"stats"`
	ChartData        IncomeChartData      `json:"chartData"`
	SourceTypeCounts map[string]int       `json:"sourceTypeCounts"`
	FailedSources    []SourceFailure      `json:"failedSources"`
	Period           Period               `json:"period"`
}

// IncomeStatementStats are the statement's summary figures. Totals cover
// every classified revenue/expense line; the search and epsilon filters only
// shape the rendered sections.
type IncomeStatementStats struct {
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalExpenses        float64 `json:"totalExpenses"`
	NetIncome            float64 `json:"netIncome"`
	ProfitMargin         float64 `json:"profitMargin"`
	UnclassifiedAccounts int     `json:"unclassifiedAccounts"`
}

// IncomeChartData feeds the statement's charts
type IncomeChartData struct {
	MonthlyTrend []MonthlyTrendPoint `json:"monthlyTrend"`
	TopRevenues  []AccountAmount     `json:"topRevenues"`
	TopExpenses  []AccountAmount     `json:"topExpenses"`
}

// MonthlyTrendPoint is one month's revenue and expense totals
type MonthlyTrendPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// BuildIncomeStatement assembles the income statement from aggregated line
// items and the raw movements behind them.
func BuildIncomeStatement(
	agg *Aggregator,
	movements []Movement,
	failures []SourceFailure,
	period shared.DateRange,
	opts BuildOptions,
) *IncomeStatement {
	var revenues, expenses []*LineItem
	var totalRevenue, totalExpenses decimal.Decimal

	for _, item := range agg.Items() {
		switch item.Category {
		case account.CategoryRevenue:
			totalRevenue = totalRevenue.Add(item.Net)
			if visible(item, opts.Epsilon) && matchesSearch(item, opts.Search) {
				revenues = append(revenues, item)
			}
		case account.CategoryExpense:
			totalExpenses = totalExpenses.Add(item.Net)
			if visible(item, opts.Epsilon) && matchesSearch(item, opts.Search) {
				expenses = append(expenses, item)
			}
		}
	}

	sortByNetDesc(revenues)
	sortByNetDesc(expenses)

	netIncome := totalRevenue.Sub(totalExpenses)
	profitMargin := decimal.Zero
	if !totalRevenue.IsZero() {
		profitMargin = netIncome.Div(totalRevenue).Mul(decimal.NewFromInt(100))
	}

	if failures == nil {
		failures = []SourceFailure{}
	}

	return &IncomeStatement{
		Revenues: toLines(revenues),
		Expenses: toLines(expenses),
		Stats: IncomeStatementStats{
			TotalRevenue:         money(totalRevenue),
			TotalExpenses:        money(totalExpenses),
			NetIncome:            money(netIncome),
			ProfitMargin:         money(profitMargin),
			UnclassifiedAccounts: agg.UnclassifiedAccounts(),
		},
		ChartData: IncomeChartData{
			MonthlyTrend: monthlyTrend(movements),
			TopRevenues:  topAccounts(revenues, opts.TopN),
			TopExpenses:  topAccounts(expenses, opts.TopN),
		},
		SourceTypeCounts: sourceTypeCounts(movements),
		FailedSources:    failures,
		Period:           newPeriod(period),
	}
}

// monthlyTrend buckets revenue and expense movements by calendar month
func monthlyTrend(movements []Movement) []MonthlyTrendPoint {
	type bucket struct {
		revenue  decimal.Decimal
		expenses decimal.Decimal
	}
	buckets := make(map[string]*bucket)

	for _, m := range movements {
		if m.Category != account.CategoryRevenue && m.Category != account.CategoryExpense {
			continue
		}
		month := m.Date.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		if m.Category == account.CategoryRevenue {
			b.revenue = b.revenue.Add(m.Net())
		} else {
			b.expenses = b.expenses.Add(m.Net())
		}
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]MonthlyTrendPoint, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		trend = append(trend, MonthlyTrendPoint{
			Month:    month,
			Revenue:  money(b.revenue),
			Expenses: money(b.expenses),
		})
	}
	return trend
}
