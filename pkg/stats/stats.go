package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise/pkg/category"
	"github.com/spendwise/spendwise/pkg/expense"
)

// RecentWindow is the length of the trailing window summed into Statistics.Recent30Days.
const RecentWindow = 30 * 24 * time.Hour

// cutoffLayout matches the millisecond ISO-8601 form dates are compared against.
const cutoffLayout = "2006-01-02T15:04:05.000Z"

var hundred = decimal.NewFromInt(100)

type Statistics struct {
	Total        decimal.Decimal
	Recent30Days decimal.Decimal
	ByCategory   []CategoryStats
	ByMonth      []MonthStats
}

type CategoryStats struct {
	CategoryId   int
	CategoryName string
	TotalAmount  decimal.Decimal
	Count        int
	Percentage   decimal.Decimal
}

type MonthStats struct {
	Month       string
	TotalAmount decimal.Decimal
	Count       int
}

type accumulator struct {
	total decimal.Decimal
	count int
}

func (a *accumulator) add(amount decimal.Decimal) {
	a.total = a.total.Add(amount)
	a.count++
}

// Compute derives the four views from one owner's expenses and categories.
//
// Expenses whose category is not in categories are counted in Total, Recent30Days and
// ByMonth but left out of ByCategory. ByCategory is ordered by ascending category id and
// ByMonth by descending month key.
func Compute(expenses []expense.Expense, categories []category.Category, now time.Time) Statistics {
	cutoff := now.UTC().Add(-RecentWindow).Format(cutoffLayout)

	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.Id] = c.Name
	}

	total := decimal.Zero
	recent := decimal.Zero
	byCategory := make(map[int]*accumulator)
	byMonth := make(map[string]*accumulator)

	for _, e := range expenses {
		total = total.Add(e.Amount)
		if e.Date >= cutoff {
			recent = recent.Add(e.Amount)
		}
		if _, ok := names[e.CategoryId]; ok {
			accumulate(byCategory, e.CategoryId, e.Amount)
		}
		accumulate(byMonth, monthKey(e.Date), e.Amount)
	}

	return Statistics{
		Total:        total,
		Recent30Days: recent,
		ByCategory:   categoryStats(byCategory, names, total),
		ByMonth:      monthStats(byMonth),
	}
}

func accumulate[K comparable](groups map[K]*accumulator, key K, amount decimal.Decimal) {
	acc, ok := groups[key]
	if !ok {
		acc = &accumulator{total: decimal.Zero}
		groups[key] = acc
	}
	acc.add(amount)
}

// monthKey is the first seven characters of date, or all of it when shorter.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// Percentage is part/total*100 rounded to two decimals, or zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

func categoryStats(groups map[int]*accumulator, names map[int]string, total decimal.Decimal) []CategoryStats {
	result := make([]CategoryStats, 0, len(groups))
	for id, acc := range groups {
		result = append(result, CategoryStats{
			CategoryId:   id,
			CategoryName: names[id],
			TotalAmount:  acc.total,
			Count:        acc.count,
			Percentage:   Percentage(acc.total, total),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryId < result[j].CategoryId })
	return result
}

func monthStats(groups map[string]*accumulator) []MonthStats {
	result := make([]MonthStats, 0, len(groups))
	for month, acc := range groups {
		result = append(result, MonthStats{Month: month, TotalAmount: acc.total, Count: acc.count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month > result[j].Month })
	return result
}
