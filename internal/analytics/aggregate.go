package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel replaces an empty category when grouping.
const UncategorizedLabel = "Uncategorized"

// Predicate selects the transactions an aggregation considers.
type Predicate func(*model.Transaction) bool

var (
	// Expenses keeps money out.
	Expenses Predicate = func(t *model.Transaction) bool { return t.IsExpense() }
	// Incomes keeps money in.
	Incomes Predicate = func(t *model.Transaction) bool { return t.IsIncome() }
	// AnyKind keeps everything.
	AnyKind Predicate = func(*model.Transaction) bool { return true }
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// TrailingWindow is [now - months, now).
func TrailingWindow(now time.Time, months int) Window {
	return Window{Start: now.AddDate(0, -months, 0), End: now}
}

// CalendarMonth is the calendar month containing now shifted by offset months
// (0 = current month, -1 = previous month).
func CalendarMonth(now time.Time, offset int) Window {
	start := MonthStart(now).AddDate(0, offset, 0)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// MonthStart truncates t to the first day of its calendar month, in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTotal is a summed magnitude for one month, optionally one category.
type MonthlyTotal struct {
	Month    time.Time
	Category string
	Total    float64
	Count    int
}

// CategoryTotal is a summed magnitude for one category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

func categoryKey(t *model.Transaction) string {
	c := strings.TrimSpace(t.Category)
	if c == "" {
		return UncategorizedLabel
	}
	return c
}

// Filter returns the transactions matching pred that fall inside w.
func Filter(txns []*model.Transaction, pred Predicate, w Window) []*model.Transaction {
	var out []*model.Transaction
	for _, t := range txns {
		if t == nil || !pred(t) || !w.Contains(t.Date) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sum totals the magnitudes of the transactions matching pred.
func Sum(txns []*model.Transaction, pred Predicate) float64 {
	total := decimal.Zero
	for _, t := range txns {
		if t == nil || !pred(t) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(t.Amount))
	}
	return total.InexactFloat64()
}

type groupKey struct {
	month    time.Time
	category string
}

type accumulator struct {
	total decimal.Decimal
	count int
}

// MonthlyTotals groups matching transactions by calendar month. Only months
// that contain at least one transaction are returned, ascending.
func MonthlyTotals(txns []*model.Transaction, pred Predicate) []MonthlyTotal {
	return group(txns, pred, false)
}

// MonthlyCategoryTotals groups matching transactions by (month, category),
// ascending by month then category.
func MonthlyCategoryTotals(txns []*model.Transaction, pred Predicate) []MonthlyTotal {
	return group(txns, pred, true)
}

func group(txns []*model.Transaction, pred Predicate, byCategory bool) []MonthlyTotal {
	groups := make(map[groupKey]*accumulator)
	for _, t := range txns {
		if t == nil || !pred(t) {
			continue
		}
		key := groupKey{month: MonthStart(t.Date)}
		if byCategory {
			key.category = categoryKey(t)
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{total: decimal.Zero}
			groups[key] = acc
		}
		acc.total = acc.total.Add(decimal.NewFromFloat(t.Amount))
		acc.count++
	}

	out := make([]MonthlyTotal, 0, len(groups))
	for k, acc := range groups {
		out = append(out, MonthlyTotal{
			Month:    k.month,
			Category: k.category,
			Total:    acc.total.InexactFloat64(),
			Count:    acc.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CategoryTotals groups matching transactions by category, largest total
// first. Equal totals are ordered by category name.
func CategoryTotals(txns []*model.Transaction, pred Predicate) []CategoryTotal {
	groups := make(map[string]*accumulator)
	for _, t := range txns {
		if t == nil || !pred(t) {
			continue
		}
		key := categoryKey(t)
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{total: decimal.Zero}
			groups[key] = acc
		}
		acc.total = acc.total.Add(decimal.NewFromFloat(t.Amount))
		acc.count++
	}

	out := make([]CategoryTotal, 0, len(groups))
	for cat, acc := range groups {
		out = append(out, CategoryTotal{Category: cat, Total: acc.total.InexactFloat64(), Count: acc.count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func totalsOf(series []MonthlyTotal) []float64 {
	values := make([]float64, len(series))
	for i, m := range series {
		values[i] = m.Total
	}
	return values
}
