package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSigned(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		wantAmt  float64
		wantKind Kind
	}{
		{"positive is income", 120.5, 120.5, KindIncome},
		{"negative is expense", -42.1, 42.1, KindExpense},
		{"zero is expense", 0, 0, KindExpense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, kind := FromSigned(tt.in)
			assert.Equal(t, tt.wantAmt, amt)
			assert.Equal(t, tt.wantKind, kind)

			txn := &Transaction{Amount: amt, Kind: kind}
			assert.Equal(t, tt.in, txn.Signed())
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, (&Transaction{ID: "t1", Amount: 10, Kind: KindExpense, Date: date}).Validate())
	assert.Error(t, (&Transaction{ID: "t2", Amount: -10, Kind: KindExpense, Date: date}).Validate())
	assert.Error(t, (&Transaction{ID: "t3", Amount: 10, Date: date}).Validate())
	assert.Error(t, (&Transaction{ID: "t4", Amount: 10, Kind: KindIncome}).Validate())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("OUT")
	require.NoError(t, err)
	assert.Equal(t, KindExpense, k)

	k, err = ParseKind("income")
	require.NoError(t, err)
	assert.Equal(t, KindIncome, k)

	_, err = ParseKind("transfer")
	assert.Error(t, err)
}

func TestBudgetMonthlyLimit(t *testing.T) {
	assert.InDelta(t, 1300.0, (&Budget{Amount: 300, Period: BudgetPeriodWeekly}).MonthlyLimit(), 1e-9)
	assert.InDelta(t, 500.0, (&Budget{Amount: 500, Period: BudgetPeriodMonthly}).MonthlyLimit(), 1e-9)
	assert.InDelta(t, 100.0, (&Budget{Amount: 1200, Period: BudgetPeriodYearly}).MonthlyLimit(), 1e-9)
}

func TestRecomputeSpent(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	budget := Budget{ID: "b1", Category: "Groceries", Amount: 400, StartDate: start, EndDate: end, SpentAmount: 999}

	txns := []*Transaction{
		{ID: "1", Category: "Groceries", Amount: 50, Kind: KindExpense, Date: start.AddDate(0, 0, 2)},
		{ID: "2", Category: "groceries", Amount: 25, Kind: KindExpense, Date: start.AddDate(0, 0, 10)},
		{ID: "3", Category: "Groceries", Amount: 70, Kind: KindExpense, Date: start.AddDate(0, 1, 2)},
		{ID: "4", Category: "Groceries", Amount: 500, Kind: KindIncome, Date: start.AddDate(0, 0, 3)},
		{ID: "5", Category: "Dining", Amount: 30, Kind: KindExpense, Date: start.AddDate(0, 0, 3)},
		nil,
	}

	got := RecomputeSpent(budget, txns)
	assert.Equal(t, 75.0, got.SpentAmount)
	assert.Equal(t, 999.0, budget.SpentAmount, "input budget must not change")
}

func TestTrendDirectionString(t *testing.T) {
	assert.Equal(t, "Stable", TrendStable.String())
	assert.Equal(t, "Increasing", TrendIncreasing.String())
	assert.Equal(t, "Decreasing", TrendDecreasing.String())
}
