package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/shared"
)

// BalanceSheet is the full balance sheet payload
type BalanceSheet struct {
	Assets           []StatementLine   `json:"assets"`
	Liabilities      []StatementLine   `json:"liabilities"`
	Equity           []StatementLine   `json:"equity"`
	Stats            BalanceSheetStats `json:"stats"`
	ChartData        BalanceChartData  `json:"chartData"`
	SourceTypeCounts map[string]int    `json:"sourceTypeCounts"`
	FailedSources    []SourceFailure   `json:"failedSources"`
	Period           Period            `json:"period"`
}

// BalanceSheetStats are the sheet's summary figures. Net income is
// recomputed from the revenue and expense lines accumulated in the same run
// and folded into equity before the balance check.
type BalanceSheetStats struct {
	TotalAssets          float64 `json:"totalAssets"`
	TotalLiabilities     float64 `json:"totalLiabilities"`
	TotalEquity          float64 `json:"totalEquity"`
	NetIncome            float64 `json:"netIncome"`
	EquityWithIncome     float64 `json:"equityWithIncome"`
	Difference           float64 `json:"difference"`
	IsBalanced           bool    `json:"isBalanced"`
	UnclassifiedAccounts int     `json:"unclassifiedAccounts"`
}

// BalanceChartData feeds the sheet's composition charts
type BalanceChartData struct {
	AssetComposition     []AccountAmount `json:"assetComposition"`
	LiabilityComposition []AccountAmount `json:"liabilityComposition"`
	Summary              []AccountAmount `json:"summary"`
}

// BuildBalanceSheet assembles the balance sheet from aggregated line items
// and the raw movements behind them.
func BuildBalanceSheet(
	agg *Aggregator,
	movements []Movement,
	failures []SourceFailure,
	period shared.DateRange,
	opts BuildOptions,
) *BalanceSheet {
	var assets, liabilities, equity []*LineItem
	var totalAssets, totalLiabilities, totalEquity decimal.Decimal
	var totalRevenue, totalExpenses decimal.Decimal

	for _, item := range agg.Items() {
		switch item.Category {
		case account.CategoryAsset:
			totalAssets = totalAssets.Add(item.Net)
			if visible(item, opts.Epsilon) && matchesSearch(item, opts.Search) {
				assets = append(assets, item)
			}
		case account.CategoryLiability:
			totalLiabilities = totalLiabilities.Add(item.Net)
			if visible(item, opts.Epsilon) && matchesSearch(item, opts.Search) {
				liabilities = append(liabilities, item)
			}
		case account.CategoryEquity:
			totalEquity = totalEquity.Add(item.Net)
			if visible(item, opts.Epsilon) && matchesSearch(item, opts.Search) {
				equity = append(equity, item)
			}
		case account.CategoryRevenue:
			totalRevenue = totalRevenue.Add(item.Net)
		case account.CategoryExpense:
			totalExpenses = totalExpenses.Add(item.Net)
		}
	}

	sortByMagnitudeDesc(assets)
	sortByMagnitudeDesc(liabilities)
	sortByMagnitudeDesc(equity)

	netIncome := totalRevenue.Sub(totalExpenses)
	equityWithIncome := totalEquity.Add(netIncome)
	difference := totalAssets.Sub(totalLiabilities.Add(equityWithIncome))
	isBalanced := difference.Abs().LessThan(opts.Epsilon)

	if failures == nil {
		failures = []SourceFailure{}
	}

	return &BalanceSheet{
		Assets:      toLines(assets),
		Liabilities: toLines(liabilities),
		Equity:      toLines(equity),
		Stats: BalanceSheetStats{
			TotalAssets:          money(totalAssets),
			TotalLiabilities:     money(totalLiabilities),
			TotalEquity:          money(totalEquity),
			NetIncome:            money(netIncome),
			EquityWithIncome:     money(equityWithIncome),
			Difference:           money(difference),
			IsBalanced:           isBalanced,
			UnclassifiedAccounts: agg.UnclassifiedAccounts(),
		},
		ChartData: BalanceChartData{
			AssetComposition:     topAccounts(assets, opts.TopN),
			LiabilityComposition: topAccounts(liabilities, opts.TopN),
			Summary: []AccountAmount{
				{Code: "assets", Name: "Total assets", Amount: money(totalAssets)},
				{Code: "liabilities", Name: "Total liabilities", Amount: money(totalLiabilities)},
				{Code: "equity", Name: "Equity incl. net income", Amount: money(equityWithIncome)},
			},
		},
		SourceTypeCounts: sourceTypeCounts(movements),
		FailedSources:    failures,
		Period:           newPeriod(period),
	}
}
