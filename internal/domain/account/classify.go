package account

import "strings"

// Category is the semantic class of an account used by statement building
type Category string

const (
	CategoryAsset        Category = "asset"
	CategoryLiability    Category = "liability"
	CategoryEquity       Category = "equity"
	CategoryRevenue      Category = "revenue"
	CategoryExpense      Category = "expense"
	CategoryUnclassified Category = "unclassified"
)

// synonyms maps every accepted type-label spelling (lowercased) to its
// category. The back office stores type labels as free text entered in
// either Arabic or English, so each category accepts every spelling seen
// in production data.
var synonyms = map[string]Category{
	// assets
	"asset":   CategoryAsset,
	"assets":  CategoryAsset,
	"أصول":    CategoryAsset,
	"اصول":    CategoryAsset,
	"الأصول":  CategoryAsset,
	"الاصول":  CategoryAsset,

	// liabilities
	"liability":   CategoryLiability,
	"liabilities": CategoryLiability,
	"خصوم":        CategoryLiability,
	"الخصوم":      CategoryLiability,
	"التزامات":    CategoryLiability,
	"الالتزامات":  CategoryLiability,

	// equity
	"equity":       CategoryEquity,
	"حقوق الملكية": CategoryEquity,
	"حقوق ملكية":   CategoryEquity,
	"رأس المال":    CategoryEquity,
	"راس المال":    CategoryEquity,

	// revenue
	"revenue":  CategoryRevenue,
	"revenues": CategoryRevenue,
	"income":   CategoryRevenue,
	"sales":    CategoryRevenue,
	"إيرادات":  CategoryRevenue,
	"ايرادات":  CategoryRevenue,
	"الإيرادات": CategoryRevenue,
	"الايرادات": CategoryRevenue,
	"مبيعات":   CategoryRevenue,
	"المبيعات":  CategoryRevenue,

	// expenses
	"expense":   CategoryExpense,
	"expenses":  CategoryExpense,
	"مصروفات":   CategoryExpense,
	"المصروفات": CategoryExpense,
	"مصاريف":    CategoryExpense,
	"المصاريف":  CategoryExpense,
}

// Classify maps a free-text account type label to its category. Matching is
// case-insensitive and ignores surrounding whitespace; a label with no known
// spelling returns CategoryUnclassified, which callers must surface rather
// than drop.
func Classify(typeLabel string) Category {
	label := strings.ToLower(strings.TrimSpace(typeLabel))
	if label == "" {
		return CategoryUnclassified
	}
	if category, ok := synonyms[label]; ok {
		return category
	}
	return CategoryUnclassified
}

// DebitIncreasing reports whether debits increase balances in this category
func (c Category) DebitIncreasing() bool {
	return c == CategoryAsset || c == CategoryExpense
}
