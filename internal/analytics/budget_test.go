package analytics

import (
	"fmt"
	"testing"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groceries300 spends 300 a month on groceries across the trailing window.
func groceries300() []*model.Transaction {
	return []*model.Transaction{
		expense("Groceries", "market", 300, monthDay(-2, 20)),
		expense("Groceries", "market", 300, monthDay(-1, 20)),
		expense("Groceries", "market", 300, monthDay(0, 5)),
	}
}

func budgetFor(category string, amount float64, period model.BudgetPeriod) *model.Budget {
	return &model.Budget{
		ID:       "budget-" + category,
		UserID:   "user-123",
		Name:     category,
		Category: category,
		Amount:   amount,
		Period:   period,
		IsActive: true,
	}
}

func TestBudgetRecommendations(t *testing.T) {
	t.Run("missing budget suggests creating one", func(t *testing.T) {
		got := BudgetRecommendations(groceries300(), nil, testNow)
		require.Len(t, got, 1)
		assert.Contains(t, got[0], "don't have a budget for Groceries")
		assert.Contains(t, got[0], "$330 per month")
		assert.Contains(t, got[0], "$300.00")
	})

	t.Run("suggested limit rounds up", func(t *testing.T) {
		txns := []*model.Transaction{expense("Dining", "restaurant", 1000, monthDay(-1, 20))}
		got := BudgetRecommendations(txns, nil, testNow)
		require.Len(t, got, 1)
		assert.Contains(t, got[0], "$367 per month")
	})

	t.Run("budget below average suggests increasing", func(t *testing.T) {
		budgets := []*model.Budget{budgetFor("groceries", 200, model.BudgetPeriodMonthly)}
		got := BudgetRecommendations(groceries300(), budgets, testNow)
		require.Len(t, got, 1)
		assert.Contains(t, got[0], "below your average")
		assert.Contains(t, got[0], "increasing it to $330")
	})

	t.Run("yearly budget is normalized before comparing", func(t *testing.T) {
		budgets := []*model.Budget{budgetFor("Groceries", 1200, model.BudgetPeriodYearly)}
		got := BudgetRecommendations(groceries300(), budgets, testNow)
		require.Len(t, got, 1)
		assert.Contains(t, got[0], "below your average")
	})

	t.Run("generous budget suggests reducing", func(t *testing.T) {
		budgets := []*model.Budget{budgetFor("Groceries", 600, model.BudgetPeriodMonthly)}
		got := BudgetRecommendations(groceries300(), budgets, testNow)
		require.Len(t, got, 1)
		assert.Contains(t, got[0], "well above")
	})

	t.Run("budgets in range are balanced", func(t *testing.T) {
		budgets := []*model.Budget{budgetFor("Groceries", 100, model.BudgetPeriodWeekly)}
		got := BudgetRecommendations(groceries300(), budgets, testNow)
		assert.Equal(t, []string{BalancedBudgetsInsight}, got)
	})

	t.Run("no recent expenses", func(t *testing.T) {
		txns := []*model.Transaction{expense("Groceries", "market", 300, monthDay(-6, 20))}
		assert.Equal(t, []string{NoBudgetHistoryInsight}, BudgetRecommendations(txns, nil, testNow))
	})

	t.Run("only the top five categories are considered", func(t *testing.T) {
		var txns []*model.Transaction
		for i := 1; i <= 7; i++ {
			txns = append(txns, expense(fmt.Sprintf("Category %d", i), "spend", float64(i*100), monthDay(-1, 20)))
		}
		got := BudgetRecommendations(txns, nil, testNow)
		require.Len(t, got, recommendationTopN)
		assert.Contains(t, got[0], "Category 7")
		for _, msg := range got {
			assert.NotContains(t, msg, "Category 1 ")
			assert.NotContains(t, msg, "Category 2 ")
		}
	})
}
