package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/shopspring/decimal"
)

const (
	// BalancedBudgetsInsight is produced when no top category needs a change.
	BalancedBudgetsInsight = "Your budgets are well balanced with your recent spending. Keep it up!"
	// NoBudgetHistoryInsight is produced when there is no recent spending to base a recommendation on.
	NoBudgetHistoryInsight = "Not enough spending history to recommend budgets yet."

	recommendationMonths = 3
	recommendationTopN   = 5
	overBudgetFactor     = 1.5
)

var budgetHeadroom = decimal.RequireFromString("1.1")

// BudgetRecommendations compares the five largest categories of the trailing
// three months against the user's budgets. Suggested limits are the monthly
// average plus 10%, rounded up to a whole amount.
func BudgetRecommendations(txns []*model.Transaction, budgets []*model.Budget, now time.Time) []string {
	totals := CategoryTotals(Filter(txns, Expenses, TrailingWindow(now, recommendationMonths)), Expenses)
	if len(totals) == 0 {
		return []string{NoBudgetHistoryInsight}
	}
	if len(totals) > recommendationTopN {
		totals = totals[:recommendationTopN]
	}

	var insights []string
	for _, ct := range totals {
		avg := decimal.NewFromFloat(ct.Total).Div(decimal.NewFromInt(recommendationMonths))
		target := avg.Mul(budgetHeadroom).Ceil()
		average := avg.InexactFloat64()
		name := displayName(ct.Category)

		budget := findBudget(budgets, ct.Category)
		if budget == nil {
			insights = append(insights, fmt.Sprintf("You don't have a budget for %s yet. Consider creating one of %s per month based on your average spending of %s.",
				name, wholeMoney(target.InexactFloat64()), money(average)))
			continue
		}

		limit := budget.MonthlyLimit()
		switch {
		case limit < average:
			insights = append(insights, fmt.Sprintf("Your %s budget (%s) is below your average monthly spending (%s). Consider increasing it to %s.",
				name, money(limit), money(average), wholeMoney(target.InexactFloat64())))
		case limit > average*overBudgetFactor:
			insights = append(insights, fmt.Sprintf("Your %s budget (%s) is well above your average monthly spending (%s). You could reduce it and put the difference toward savings.",
				name, money(limit), money(average)))
		}
	}

	if len(insights) == 0 {
		return []string{BalancedBudgetsInsight}
	}
	return insights
}

func findBudget(budgets []*model.Budget, category string) *model.Budget {
	for _, b := range budgets {
		if b != nil && strings.EqualFold(strings.TrimSpace(b.Category), category) {
			return b
		}
	}
	return nil
}
