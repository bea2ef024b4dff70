package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

const (
	// FirstTransactionInsight is the only insight produced for a user with no
	// transactions at all.
	FirstTransactionInsight = "Add your first transaction to start receiving personalized insights."
	// KeepTrackingInsight is produced when data exists but no rule fired.
	KeepTrackingInsight = "Keep tracking your transactions to unlock more personalized insights."

	comparisonThreshold  = 10.0
	targetSavingsRate    = 20.0
	minRepeatOccurrences = 3
)

// SpendingInsights runs the month-over-month rules in a fixed order:
// comparison, biggest categories, income vs expense, frequent merchants.
func SpendingInsights(txns []*model.Transaction, now time.Time) []string {
	if countNonNil(txns) == 0 {
		return []string{FirstTransactionInsight}
	}

	var insights []string
	insights = append(insights, SpendingComparison(txns, now)...)
	insights = append(insights, BiggestCategories(txns, now)...)
	insights = append(insights, IncomeVsExpense(txns, now)...)
	insights = append(insights, FrequencyInsights(txns, now)...)
	if len(insights) == 0 {
		return []string{KeepTrackingInsight}
	}
	return insights
}

// SpendingComparison compares this month's expenses with last month's.
// Changes within ±10% are not worth mentioning.
func SpendingComparison(txns []*model.Transaction, now time.Time) []string {
	current := Sum(Filter(txns, Expenses, CalendarMonth(now, 0)), Expenses)
	previous := Sum(Filter(txns, Expenses, CalendarMonth(now, -1)), Expenses)

	change, ok := percentChange(current, previous)
	if !ok {
		return nil
	}
	switch {
	case change > comparisonThreshold:
		return []string{fmt.Sprintf("Your spending increased by %s compared to last month (%s vs %s). Review where the extra money went.",
			percent(change), money(current), money(previous))}
	case change < -comparisonThreshold:
		return []string{fmt.Sprintf("Great job! Your spending decreased by %s compared to last month.", percent(-change))}
	default:
		return nil
	}
}

// BiggestCategories names this month's largest expense categories.
func BiggestCategories(txns []*model.Transaction, now time.Time) []string {
	totals := CategoryTotals(Filter(txns, Expenses, CalendarMonth(now, 0)), Expenses)
	if len(totals) == 0 {
		return nil
	}

	insights := []string{fmt.Sprintf("Your biggest expense category this month is %s at %s.",
		displayName(totals[0].Category), money(totals[0].Total))}
	if len(totals) >= 2 {
		insights = append(insights, fmt.Sprintf("Try reducing spending on %s and %s to boost your savings.",
			displayName(totals[0].Category), displayName(totals[1].Category)))
	}
	return insights
}

// IncomeVsExpense reports this month's savings rate.
func IncomeVsExpense(txns []*model.Transaction, now time.Time) []string {
	month := Filter(txns, AnyKind, CalendarMonth(now, 0))
	income := Sum(month, Incomes)
	expense := Sum(month, Expenses)
	if income <= 0 || expense <= 0 {
		return nil
	}

	rate := (income - expense) / income * 100
	switch {
	case rate > targetSavingsRate:
		return []string{fmt.Sprintf("Excellent! You're saving %s of your income this month.", percent(rate))}
	case rate > 0:
		return []string{fmt.Sprintf("You're saving %s of your income this month. Aim for at least 20%% to build a stronger safety net.", percent(rate))}
	default:
		return []string{fmt.Sprintf("Warning: You're not saving any of your income this month (savings rate %s). Review your expenses.", percent(rate))}
	}
}

type repeatGroup struct {
	name  string
	count int
	total float64
}

// FrequencyInsights finds the expense description repeated most often this
// month, ignoring case and surrounding whitespace.
func FrequencyInsights(txns []*model.Transaction, now time.Time) []string {
	groups := make(map[string]*repeatGroup)
	for _, t := range Filter(txns, Expenses, CalendarMonth(now, 0)) {
		key := strings.ToLower(strings.TrimSpace(t.Description))
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &repeatGroup{name: strings.TrimSpace(t.Description)}
			groups[key] = g
		}
		g.count++
		g.total += t.Amount
	}

	var candidates []*repeatGroup
	for _, g := range groups {
		if g.count >= minRepeatOccurrences {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		if candidates[i].total != candidates[j].total {
			return candidates[i].total > candidates[j].total
		}
		return strings.ToLower(candidates[i].name) < strings.ToLower(candidates[j].name)
	})

	top := candidates[0]
	return []string{fmt.Sprintf("You made %d transactions at %s this month, totalling %s.", top.count, top.name, money(top.total))}
}

func countNonNil(txns []*model.Transaction) int {
	var n int
	for _, t := range txns {
		if t != nil {
			n++
		}
	}
	return n
}
