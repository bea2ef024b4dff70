package analytics

import (
	"testing"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFinancialHealth(t *testing.T) {
	categories := []string{"Rent", "Food", "Transport", "Utilities", "Fun"}
	var steady []*model.Transaction
	for offset := -3; offset <= -1; offset++ {
		steady = append(steady, income("Salary", 3000, monthDay(offset, 20)))
		for _, c := range categories {
			steady = append(steady, expense(c, c, 400, monthDay(offset, 20)))
		}
	}

	t.Run("no transactions scores zero", func(t *testing.T) {
		got := FinancialHealth(nil, nil, testNow)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, HealthGettingStarted, got.Label)
	})

	t.Run("full marks", func(t *testing.T) {
		budgets := []*model.Budget{budgetFor("Food", 500, model.BudgetPeriodMonthly)}
		got := FinancialHealth(steady, budgets, testNow)
		assert.Equal(t, 40, got.SavingsRate)
		assert.Equal(t, 20, got.Diversity)
		assert.Equal(t, 20, got.Consistency)
		assert.Equal(t, 20, got.Budgeting)
		assert.Equal(t, 100, got.Score)
		assert.Equal(t, HealthExcellent, got.Label)
	})

	t.Run("no budgets", func(t *testing.T) {
		got := FinancialHealth(steady, nil, testNow)
		assert.Equal(t, 80, got.Score)
		assert.Equal(t, HealthExcellent, got.Label)
	})

	t.Run("overspending in a single month", func(t *testing.T) {
		txns := []*model.Transaction{
			income("Salary", 100, monthDay(-1, 20)),
			expense("Rent", "landlord", 200, monthDay(-1, 21)),
		}
		got := FinancialHealth(txns, nil, testNow)
		assert.Equal(t, 0, got.SavingsRate)
		assert.Equal(t, 5, got.Diversity)
		assert.Equal(t, 0, got.Consistency)
		assert.Equal(t, 5, got.Score)
		assert.Equal(t, HealthGettingStarted, got.Label)
	})

	t.Run("expenses without income earn no savings points", func(t *testing.T) {
		txns := []*model.Transaction{
			expense("Rent", "landlord", 200, monthDay(-2, 20)),
			expense("Food", "market", 50, monthDay(-1, 20)),
			expense("Fun", "cinema", 20, monthDay(-1, 21)),
		}
		got := FinancialHealth(txns, nil, testNow)
		assert.Equal(t, 0, got.SavingsRate)
		assert.Equal(t, 15, got.Diversity)
		assert.Equal(t, 10, got.Consistency)
		assert.Equal(t, 25, got.Score)
		assert.Equal(t, HealthNeedsImprovement, got.Label)
	})
}

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, HealthExcellent},
		{80, HealthExcellent},
		{79, HealthGood},
		{60, HealthGood},
		{40, HealthFair},
		{20, HealthNeedsImprovement},
		{19, HealthGettingStarted},
		{0, HealthGettingStarted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, healthLabel(tt.score))
	}
}
