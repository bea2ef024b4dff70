package analytics

import (
	"testing"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows(t *testing.T) {
	t.Run("trailing window is half-open", func(t *testing.T) {
		w := TrailingWindow(testNow, 3)
		assert.Equal(t, time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC), w.Start)
		assert.True(t, w.Contains(w.Start))
		assert.False(t, w.Contains(testNow))
		assert.True(t, w.Contains(testNow.Add(-time.Nanosecond)))
	})

	t.Run("calendar month offsets", func(t *testing.T) {
		cur := CalendarMonth(testNow, 0)
		prev := CalendarMonth(testNow, -1)
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), cur.Start)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), cur.End)
		assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), prev.Start)
		assert.Equal(t, cur.Start, prev.End)
	})

	t.Run("month start normalizes to UTC midnight", func(t *testing.T) {
		loc := time.FixedZone("AEST", 10*60*60)
		got := MonthStart(time.Date(2025, time.February, 28, 23, 0, 0, 0, loc))
		assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestFilterAndSum(t *testing.T) {
	txns := []*model.Transaction{
		expense("Food", "Lunch", 10, monthDay(0, 1)),
		income("Salary", 5000, monthDay(0, 1)),
		nil,
		expense("Food", "Dinner", 25, monthDay(-4, 20)),
	}

	inWindow := Filter(txns, Expenses, TrailingWindow(testNow, 3))
	require.Len(t, inWindow, 1)
	assert.Equal(t, "Lunch", inWindow[0].Description)

	assert.Equal(t, 35.0, Sum(txns, Expenses))
	assert.Equal(t, 5000.0, Sum(txns, Incomes))
	assert.Equal(t, 5035.0, Sum(txns, AnyKind))
}

func TestSumIsExactForCents(t *testing.T) {
	var txns []*model.Transaction
	for i := 0; i < 10; i++ {
		txns = append(txns, expense("Snacks", "Gum", 0.1, monthDay(0, 2)))
	}
	assert.Equal(t, 1.0, Sum(txns, Expenses))
}

func TestMonthlyTotals(t *testing.T) {
	txns := []*model.Transaction{
		expense("Food", "a", 10, monthDay(-1, 3)),
		expense("Rent", "b", 1000, monthDay(-1, 1)),
		expense("Food", "c", 15, monthDay(-2, 9)),
		expense("", "d", 5, monthDay(-1, 4)),
		income("e", 3000, monthDay(-1, 15)),
	}

	t.Run("by month ascending, populated months only", func(t *testing.T) {
		got := MonthlyTotals(txns, Expenses)
		require.Len(t, got, 2)
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), got[0].Month)
		assert.Equal(t, 15.0, got[0].Total)
		assert.Equal(t, 1015.0, got[1].Total)
		assert.Equal(t, 3, got[1].Count)
	})

	t.Run("by month and category", func(t *testing.T) {
		got := MonthlyCategoryTotals(txns, Expenses)
		require.Len(t, got, 4)
		assert.Equal(t, "Food", got[0].Category)
		assert.Equal(t, "Food", got[1].Category)
		assert.Equal(t, "Rent", got[2].Category)
		assert.Equal(t, UncategorizedLabel, got[3].Category)
	})
}

func TestCategoryTotals(t *testing.T) {
	txns := []*model.Transaction{
		expense("Transport", "bus", 50, monthDay(0, 1)),
		expense("Food", "lunch", 50, monthDay(0, 1)),
		expense("Rent", "rent", 900, monthDay(0, 1)),
		expense("  ", "misc", 5, monthDay(0, 1)),
	}

	got := CategoryTotals(txns, Expenses)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Rent", "Food", "Transport", UncategorizedLabel},
		[]string{got[0].Category, got[1].Category, got[2].Category, got[3].Category})
}
