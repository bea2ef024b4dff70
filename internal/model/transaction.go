// Package model holds the value types shared by the analytics engine and its
// data-access collaborators.
package model

import (
	"fmt"
	"math"
	"time"
)

// Kind classifies a transaction as money in or money out.
type Kind int

const (
	KindUnspecified Kind = iota
	KindIncome
	KindExpense
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return "unspecified"
	}
}

// ParseKind maps a stored kind label back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "income", "INCOME", "Income", "in", "IN":
		return KindIncome, nil
	case "expense", "EXPENSE", "Expense", "out", "OUT":
		return KindExpense, nil
	default:
		return KindUnspecified, fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Transaction is a single normalized transaction. Amount is always an unsigned
// magnitude; Kind carries the direction.
type Transaction struct {
	ID          string    `firestore:"id" json:"id"`
	UserID      string    `firestore:"userId" json:"user_id"`
	Date        time.Time `firestore:"date" json:"date"`
	Description string    `firestore:"description" json:"description"`
	Category    string    `firestore:"category" json:"category"`
	Amount      float64   `firestore:"amount" json:"amount"`
	Kind        Kind      `firestore:"kind" json:"kind"`
	CreatedAt   time.Time `firestore:"createdAt" json:"created_at"`
}

// IsExpense reports whether the transaction is money out.
func (t *Transaction) IsExpense() bool { return t.Kind == KindExpense }

// IsIncome reports whether the transaction is money in.
func (t *Transaction) IsIncome() bool { return t.Kind == KindIncome }

// Validate checks the normalized representation.
func (t *Transaction) Validate() error {
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("transaction %s: amount must be a non-negative magnitude, got %v", t.ID, t.Amount)
	}
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return fmt.Errorf("transaction %s: kind must be income or expense", t.ID)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: date is required", t.ID)
	}
	return nil
}

// FromSigned converts a signed amount (negative = expense) into the
// magnitude + kind representation used everywhere inside the engine.
// Zero is treated as an expense of zero.
func FromSigned(amount float64) (float64, Kind) {
	if amount > 0 {
		return amount, KindIncome
	}
	return math.Abs(amount), KindExpense
}

// Signed is the inverse of FromSigned.
func (t *Transaction) Signed() float64 {
	if t.Kind == KindExpense {
		return -t.Amount
	}
	return t.Amount
}
