package warehouse

import (
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/Thareesha98/FinanceML-sub002/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRowToModel(t *testing.T) {
	date := civil.Date{Year: 2025, Month: time.May, Day: 3}

	t.Run("negative amount is an expense", func(t *testing.T) {
		row := &TransactionRow{
			TransactionID:   "tx-1",
			UserID:          "user-1",
			TransactionDate: date,
			Amount:          big.NewRat(-4550, 100),
			RawDescription:  "Grocery shopping",
			CategoryName:    bigquery.NullString{StringVal: " Food ", Valid: true},
		}
		txn, err := row.ToModel()
		require.NoError(t, err)
		assert.Equal(t, 45.5, txn.Amount)
		assert.Equal(t, model.KindExpense, txn.Kind)
		assert.Equal(t, "Food", txn.Category)
		assert.Equal(t, time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC), txn.Date)
		assert.NoError(t, txn.Validate())
	})

	t.Run("positive amount is income", func(t *testing.T) {
		row := &TransactionRow{TransactionID: "tx-2", TransactionDate: date, Amount: big.NewRat(8500, 1)}
		txn, err := row.ToModel()
		require.NoError(t, err)
		assert.Equal(t, model.KindIncome, txn.Kind)
		assert.Empty(t, txn.Category)
	})

	t.Run("direction column overrides the sign", func(t *testing.T) {
		row := &TransactionRow{
			TransactionID:   "tx-4",
			TransactionDate: date,
			Amount:          big.NewRat(1299, 100),
			Direction:       bigquery.NullString{StringVal: "expense", Valid: true},
		}
		txn, err := row.ToModel()
		require.NoError(t, err)
		assert.Equal(t, 12.99, txn.Amount)
		assert.Equal(t, model.KindExpense, txn.Kind)
	})

	t.Run("unknown direction is rejected", func(t *testing.T) {
		row := &TransactionRow{
			TransactionID:   "tx-5",
			TransactionDate: date,
			Amount:          big.NewRat(5, 1),
			Direction:       bigquery.NullString{StringVal: "sideways", Valid: true},
		}
		_, err := row.ToModel()
		assert.ErrorContains(t, err, "unknown transaction kind")
	})

	t.Run("null amount is rejected", func(t *testing.T) {
		_, err := (&TransactionRow{TransactionID: "tx-3", TransactionDate: date}).ToModel()
		assert.Error(t, err)
	})
}

func TestBudgetRowToModel(t *testing.T) {
	row := &BudgetRow{
		BudgetID:     "b-1",
		UserID:       "user-1",
		Name:         "Travel",
		CategoryName: bigquery.NullString{StringVal: "Travel", Valid: true},
		Amount:       big.NewRat(3000, 1),
		Period:       "yearly",
		StartDate:    bigquery.NullDate{Date: civil.Date{Year: 2025, Month: time.January, Day: 1}, Valid: true},
		IsActive:     true,
	}
	b, err := row.ToModel()
	require.NoError(t, err)
	assert.Equal(t, model.BudgetPeriodYearly, b.Period)
	assert.Equal(t, 250.0, b.MonthlyLimit())
	assert.True(t, b.EndDate.IsZero())
	assert.Equal(t, 2025, b.StartDate.Year())

	row.Period = "fortnightly"
	_, err = row.ToModel()
	assert.Error(t, err)
}

func TestTransactionQuery(t *testing.T) {
	start := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	q := transactionQuery("finance", "user-1", &start, &end, 11, 20)
	assert.Contains(t, q.sql, "FROM finance.transactions")
	assert.Contains(t, q.sql, "direction,")
	assert.Contains(t, q.sql, "transaction_date >= @start_date")
	assert.Contains(t, q.sql, "transaction_date <= @end_date")

	params := make(map[string]any)
	for _, p := range q.params {
		params[p.Name] = p.Value
	}
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 15}, params["start_date"])
	assert.Equal(t, 11, params["limit"])
	assert.Equal(t, 20, params["offset"])

	open := transactionQuery("finance", "user-1", nil, nil, 11, 0)
	assert.NotContains(t, open.sql, "@start_date")
	assert.Len(t, open.params, 3)
}

func TestBudgetQuery(t *testing.T) {
	assert.Contains(t, budgetQuery("finance", "u", false, 5, 0).sql, "AND is_active")
	assert.NotContains(t, budgetQuery("finance", "u", true, 5, 0).sql, "AND is_active")
}

func TestPagination(t *testing.T) {
	limit, offset, err := pageBounds(10, "")
	require.NoError(t, err)
	assert.Equal(t, 11, limit)
	assert.Equal(t, 0, offset)

	t.Run("full page yields a token for the next offset", func(t *testing.T) {
		token := nextToken(11, limit, offset)
		require.NotEmpty(t, token)

		_, offset, err := pageBounds(10, token)
		require.NoError(t, err)
		assert.Equal(t, 10, offset)
	})

	t.Run("short page ends the listing", func(t *testing.T) {
		assert.Empty(t, nextToken(7, limit, offset))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := pageBounds(10, store.EncodePageToken("abc"))
		assert.Error(t, err)
	})
}
