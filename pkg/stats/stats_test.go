package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise/pkg/category"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func exp(amount string, categoryId int, date string) expense.Expense {
	return expense.Expense{Amount: decimal.RequireFromString(amount), CategoryId: categoryId, Date: date, OwnerId: 1}
}

func cat(id int, name string) category.Category {
	return category.Category{Id: id, Name: name, OwnerId: 1}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCompute_EmptyLedger(t *testing.T) {
	stats := Compute(nil, []category.Category{cat(1, "Food")}, now)

	assert.True(t, stats.Total.IsZero())
	assert.True(t, stats.Recent30Days.IsZero())
	assert.NotNil(t, stats.ByCategory)
	assert.Empty(t, stats.ByCategory)
	assert.NotNil(t, stats.ByMonth)
	assert.Empty(t, stats.ByMonth)
}

func TestCompute_ByCategory(t *testing.T) {
	// given
	expenses := []expense.Expense{
		exp("10.10", 2, "2024-01-05"),
		exp("20.20", 1, "2024-01-06"),
		exp("0.70", 2, "2024-02-01"),
	}
	categories := []category.Category{cat(1, "Food"), cat(2, "Rent"), cat(3, "Unused")}

	// when
	stats := Compute(expenses, categories, now)

	// then
	assertDecimal(t, "31", stats.Total)
	require.Len(t, stats.ByCategory, 2)
	assert.Equal(t, 1, stats.ByCategory[0].CategoryId)
	assert.Equal(t, "Food", stats.ByCategory[0].CategoryName)
	assertDecimal(t, "20.2", stats.ByCategory[0].TotalAmount)
	assert.Equal(t, 1, stats.ByCategory[0].Count)
	assertDecimal(t, "65.16", stats.ByCategory[0].Percentage)
	assert.Equal(t, 2, stats.ByCategory[1].CategoryId)
	assertDecimal(t, "10.8", stats.ByCategory[1].TotalAmount)
	assert.Equal(t, 2, stats.ByCategory[1].Count)
	assertDecimal(t, "34.84", stats.ByCategory[1].Percentage)
}

func TestCompute_AmountsAreExact(t *testing.T) {
	expenses := []expense.Expense{exp("0.1", 1, "2024-03-01"), exp("0.2", 1, "2024-03-02")}

	stats := Compute(expenses, []category.Category{cat(1, "Food")}, now)

	assertDecimal(t, "0.3", stats.Total)
	assertDecimal(t, "0.3", stats.ByMonth[0].TotalAmount)
}

func TestCompute_OrphanedExpenses(t *testing.T) {
	// given
	expenses := []expense.Expense{
		exp("30", 1, "2024-01-01"),
		exp("70", 99, "2024-01-02"),
	}

	// when
	stats := Compute(expenses, []category.Category{cat(1, "Food")}, now)

	// then
	assertDecimal(t, "100", stats.Total)
	require.Len(t, stats.ByCategory, 1)
	assert.Equal(t, 1, stats.ByCategory[0].CategoryId)
	assertDecimal(t, "30", stats.ByCategory[0].Percentage)
	require.Len(t, stats.ByMonth, 1)
	assert.Equal(t, 2, stats.ByMonth[0].Count)

	categorized := decimal.Zero
	for _, c := range stats.ByCategory {
		categorized = categorized.Add(c.TotalAmount)
	}
	assertDecimal(t, "100", categorized.Add(decimal.NewFromInt(70)))
}

func TestCompute_PercentagesSumToHundred(t *testing.T) {
	// given
	expenses := []expense.Expense{
		exp("10", 1, "2024-01-01"),
		exp("10", 2, "2024-01-01"),
		exp("10", 3, "2024-01-01"),
		exp("3.33", 4, "2024-01-01"),
	}
	categories := []category.Category{cat(1, "A"), cat(2, "B"), cat(3, "C"), cat(4, "D")}

	// when
	stats := Compute(expenses, categories, now)

	// then
	sum := decimal.Zero
	for _, c := range stats.ByCategory {
		sum = sum.Add(c.Percentage)
	}
	tolerance := decimal.RequireFromString("0.02").Mul(decimal.NewFromInt(int64(len(stats.ByCategory))))
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(tolerance), "sum of percentages: %s", sum)
}

func TestCompute_ByMonth(t *testing.T) {
	// given
	expenses := []expense.Expense{
		exp("1", 1, "2023-12-31"),
		exp("2", 1, "2024-02-10T08:00:00.000Z"),
		exp("3", 1, "2024-02-28"),
		exp("4", 1, "2024-10-01"),
		exp("5", 1, "2024"),
	}

	// when
	stats := Compute(expenses, nil, now)

	// then
	months := make([]string, 0, len(stats.ByMonth))
	for _, m := range stats.ByMonth {
		months = append(months, m.Month)
	}
	assert.Equal(t, []string{"2024-10", "2024-02", "2024", "2023-12"}, months)
	assertDecimal(t, "5", stats.ByMonth[1].TotalAmount)
	assert.Equal(t, 2, stats.ByMonth[1].Count)
	assert.Empty(t, stats.ByCategory)
	assertDecimal(t, "15", stats.Total)
}

func TestCompute_Recent30Days(t *testing.T) {
	// cutoff is 2024-03-01T12:00:00.000Z
	expenses := []expense.Expense{
		exp("1", 1, "2024-03-01T12:00:00.000Z"),
		exp("2", 1, "2024-03-01T11:59:59.999Z"),
		exp("4", 1, "2024-03-01"),
		exp("8", 1, "2024-03-02"),
		exp("16", 1, "2024-03-31"),
		exp("32", 1, "2024-02-15"),
	}

	stats := Compute(expenses, nil, now)

	assertDecimal(t, "25", stats.Recent30Days)
	assertDecimal(t, "63", stats.Total)
}

func TestCompute_Recent30Days_UsesUTC(t *testing.T) {
	local := time.FixedZone("UTC+5", 5*60*60)
	expenses := []expense.Expense{exp("1", 1, "2024-03-01T12:00:00.000Z")}

	stats := Compute(expenses, nil, time.Date(2024, 3, 31, 17, 0, 0, 0, local))

	assertDecimal(t, "1", stats.Recent30Days)
}

func TestPercentage(t *testing.T) {
	assertDecimal(t, "0", Percentage(decimal.NewFromInt(5), decimal.Zero))
	assertDecimal(t, "33.33", Percentage(decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assertDecimal(t, "66.67", Percentage(decimal.NewFromInt(2), decimal.NewFromInt(3)))
	assertDecimal(t, "100", Percentage(decimal.NewFromInt(3), decimal.NewFromInt(3)))
}
