package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		typeLabel string
		expected  Category
	}{
		{"english asset singular", "asset", CategoryAsset},
		{"english asset plural", "Assets", CategoryAsset},
		{"arabic asset", "أصول", CategoryAsset},
		{"arabic asset without hamza", "اصول", CategoryAsset},
		{"arabic asset with definite article", "الأصول", CategoryAsset},
		{"english liability", "Liabilities", CategoryLiability},
		{"arabic liability", "خصوم", CategoryLiability},
		{"arabic obligations", "التزامات", CategoryLiability},
		{"english equity", "Equity", CategoryEquity},
		{"arabic equity", "حقوق الملكية", CategoryEquity},
		{"arabic capital", "رأس المال", CategoryEquity},
		{"english revenue", "revenue", CategoryRevenue},
		{"english income", "Income", CategoryRevenue},
		{"english sales", "sales", CategoryRevenue},
		{"arabic revenue", "إيرادات", CategoryRevenue},
		{"arabic sales", "مبيعات", CategoryRevenue},
		{"english expense", "expense", CategoryExpense},
		{"arabic expense", "مصروفات", CategoryExpense},
		{"arabic expense alternate spelling", "مصاريف", CategoryExpense},
		{"mixed case", "EXPENSES", CategoryExpense},
		{"surrounding whitespace", "  revenue  ", CategoryRevenue},
		{"unknown label", "miscellaneous", CategoryUnclassified},
		{"empty label", "", CategoryUnclassified},
		{"whitespace only", "   ", CategoryUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.typeLabel))
		})
	}
}

func TestCategory_DebitIncreasing(t *testing.T) {
	assert.True(t, CategoryAsset.DebitIncreasing())
	assert.True(t, CategoryExpense.DebitIncreasing())
	assert.False(t, CategoryLiability.DebitIncreasing())
	assert.False(t, CategoryEquity.DebitIncreasing())
	assert.False(t, CategoryRevenue.DebitIncreasing())
	assert.False(t, CategoryUnclassified.DebitIncreasing())
}

func TestAccount_Category(t *testing.T) {
	acc := &Account{TypeLabel: "الإيرادات"}
	assert.Equal(t, CategoryRevenue, acc.Category())
}
