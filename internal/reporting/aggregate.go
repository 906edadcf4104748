package reporting

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/account"
	"github.com/hisab-backoffice/internal/domain/costcenter"
	"github.com/hisab-backoffice/internal/domain/shared"
)

// LineItem is one account line accumulated across all sources. The identity
// fields come from the first movement seen for the code; later movements only
// add amounts, counts and tags.
type LineItem struct {
	AccountID   string
	Code        string
	Name        string
	TypeLabel   string
	Category    account.Category
	Net         decimal.Decimal
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	EntryCount  int
	Sources     []shared.SourceType
	CostCenters []*CostCenterTotal

	sourcesSeen map[shared.SourceType]bool
	ccByKey     map[string]*CostCenterTotal
}

// CostCenterTotal is a per-cost-center sub-total inside a line item.
// Movements without a resolvable cost center accumulate under "Unknown".
type CostCenterTotal struct {
	ID     string
	Code   string
	Name   string
	Amount decimal.Decimal
}

// Aggregator folds movements into per-account line items. It is request
// scoped and not safe for concurrent use.
type Aggregator struct {
	items       map[string]*LineItem
	costCenters map[uuid.UUID]*costcenter.CostCenter
}

// NewAggregator creates an aggregator resolving cost-center names from the
// company's cost centers.
func NewAggregator(centers []*costcenter.CostCenter) *Aggregator {
	byID := make(map[uuid.UUID]*costcenter.CostCenter, len(centers))
	for _, c := range centers {
		byID[c.ID] = c
	}
	return &Aggregator{
		items:       make(map[string]*LineItem),
		costCenters: byID,
	}
}

// Add folds one movement into the line item keyed by its account code
func (a *Aggregator) Add(m Movement) {
	item, ok := a.items[m.AccountCode]
	if !ok {
		item = &LineItem{
			AccountID:   m.AccountID,
			Code:        m.AccountCode,
			Name:        m.AccountName,
			TypeLabel:   m.TypeLabel,
			Category:    m.Category,
			sourcesSeen: make(map[shared.SourceType]bool),
			ccByKey:     make(map[string]*CostCenterTotal),
		}
		a.items[m.AccountCode] = item
	}

	item.Net = item.Net.Add(m.Net())
	item.DebitTotal = item.DebitTotal.Add(m.Debit)
	item.CreditTotal = item.CreditTotal.Add(m.Credit)
	item.EntryCount++

	if !item.sourcesSeen[m.Source] {
		item.sourcesSeen[m.Source] = true
		item.Sources = append(item.Sources, m.Source)
	}

	a.addCostCenter(item, m)
}

func (a *Aggregator) addCostCenter(item *LineItem, m Movement) {
	key := ""
	var id, code, name string
	if m.CostCenterID != nil {
		if cc, ok := a.costCenters[*m.CostCenterID]; ok {
			key = cc.ID.String()
			id = key
			code = cc.Code
			name = cc.Name
		} else {
			key = m.CostCenterID.String()
			id = key
			name = "Unknown"
		}
	} else {
		name = "Unknown"
	}

	total, ok := item.ccByKey[key]
	if !ok {
		total = &CostCenterTotal{ID: id, Code: code, Name: name}
		item.ccByKey[key] = total
		item.CostCenters = append(item.CostCenters, total)
	}
	total.Amount = total.Amount.Add(m.Net())
}

// AddAll folds a batch of movements
func (a *Aggregator) AddAll(movements []Movement) {
	for _, m := range movements {
		a.Add(m)
	}
}

// Items returns the accumulated line items sorted by account code. Cost
// center sub-totals inside each item are sorted by code then id so the same
// inputs always produce the same output.
func (a *Aggregator) Items() []*LineItem {
	items := make([]*LineItem, 0, len(a.items))
	for _, item := range a.items {
		sort.Slice(item.CostCenters, func(i, j int) bool {
			if item.CostCenters[i].Code != item.CostCenters[j].Code {
				return item.CostCenters[i].Code < item.CostCenters[j].Code
			}
			return item.CostCenters[i].ID < item.CostCenters[j].ID
		})
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Code < items[j].Code
	})
	return items
}

// UnclassifiedAccounts counts distinct line items whose account label
// resolved to no category. They are reported in statement stats and excluded
// from the statement sections themselves.
func (a *Aggregator) UnclassifiedAccounts() int {
	count := 0
	for _, item := range a.items {
		if item.Category == account.CategoryUnclassified {
			count++
		}
	}
	return count
}
