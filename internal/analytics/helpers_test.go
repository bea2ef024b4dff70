package analytics

import (
	"fmt"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

// testNow sits mid-month so trailing windows start mid-month too; fixtures
// use day 20 for earlier months to stay clear of the window edges.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

var txnSeq int

func nextID() string {
	txnSeq++
	return fmt.Sprintf("txn-%04d", txnSeq)
}

// monthDay returns noon on day of the month offset months from testNow.
func monthDay(offset, day int) time.Time {
	return time.Date(testNow.Year(), testNow.Month()+time.Month(offset), day, 12, 0, 0, 0, time.UTC)
}

func expense(category, description string, amount float64, date time.Time) *model.Transaction {
	return &model.Transaction{
		ID:          nextID(),
		UserID:      "user-123",
		Date:        date,
		Description: description,
		Category:    category,
		Amount:      amount,
		Kind:        model.KindExpense,
		CreatedAt:   date,
	}
}

func income(description string, amount float64, date time.Time) *model.Transaction {
	return &model.Transaction{
		ID:          nextID(),
		UserID:      "user-123",
		Date:        date,
		Description: description,
		Category:    "Salary",
		Amount:      amount,
		Kind:        model.KindIncome,
		CreatedAt:   date,
	}
}

// monthlyExpenses creates one expense per month, oldest first, ending in the
// month before testNow.
func monthlyExpenses(category string, totals ...float64) []*model.Transaction {
	txns := make([]*model.Transaction, 0, len(totals))
	for i, total := range totals {
		offset := i - len(totals)
		txns = append(txns, expense(category, category+" spend", total, monthDay(offset, 20)))
	}
	return txns
}
