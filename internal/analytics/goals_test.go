package analytics

import (
	"testing"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsGoals(t *testing.T) {
	month := func(in, out float64) []*model.Transaction {
		return []*model.Transaction{
			income("Salary", in, monthDay(0, 1)),
			expense("Rent", "landlord", out, monthDay(0, 2)),
		}
	}

	t.Run("healthy saver", func(t *testing.T) {
		got := SavingsGoals(month(10000, 7000), testNow)
		require.Len(t, got, 4)
		assert.Contains(t, got[0], "$42,000.00")
		assert.Contains(t, got[1], "Excellent savings rate of 30.0%")
		assert.Contains(t, got[2], "$600,000.00")
		assert.Contains(t, got[3], "$120,000.00")
	})

	t.Run("low savings rate targets ten percent", func(t *testing.T) {
		got := SavingsGoals(month(10000, 9500), testNow)
		require.Len(t, got, 4)
		assert.Contains(t, got[1], "5.0%")
		assert.Contains(t, got[1], "save 10% of your income ($1,000.00 per month)")
	})

	t.Run("middling savings rate targets twenty percent", func(t *testing.T) {
		got := SavingsGoals(month(10000, 8500), testNow)
		require.Len(t, got, 4)
		assert.Contains(t, got[1], "save 20% of your income ($2,000.00 per month)")
	})

	t.Run("no income this month", func(t *testing.T) {
		txns := []*model.Transaction{
			income("Salary", 5000, monthDay(-1, 20)),
			expense("Rent", "landlord", 100, monthDay(0, 2)),
		}
		assert.Equal(t, []string{InsufficientIncomeInsight}, SavingsGoals(txns, testNow))
	})
}
