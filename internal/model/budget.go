package model

import (
	"fmt"
	"strings"
	"time"
)

// BudgetPeriod is the cadence a budget limit applies to.
type BudgetPeriod int

const (
	BudgetPeriodUnspecified BudgetPeriod = iota
	BudgetPeriodWeekly
	BudgetPeriodMonthly
	BudgetPeriodYearly
)

func (p BudgetPeriod) String() string {
	switch p {
	case BudgetPeriodWeekly:
		return "weekly"
	case BudgetPeriodMonthly:
		return "monthly"
	case BudgetPeriodYearly:
		return "yearly"
	default:
		return "unspecified"
	}
}

// ParseBudgetPeriod maps a stored period label back to a BudgetPeriod.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	switch strings.ToLower(s) {
	case "weekly":
		return BudgetPeriodWeekly, nil
	case "monthly", "":
		return BudgetPeriodMonthly, nil
	case "yearly", "annually":
		return BudgetPeriodYearly, nil
	default:
		return BudgetPeriodUnspecified, fmt.Errorf("unknown budget period %q", s)
	}
}

// Budget is a spending limit for one category over a period.
// SpentAmount is computed by the data-access layer; the engine only reads it.
type Budget struct {
	ID          string       `firestore:"id" json:"id"`
	UserID      string       `firestore:"userId" json:"user_id"`
	Name        string       `firestore:"name" json:"name"`
	Category    string       `firestore:"category" json:"category"`
	Amount      float64      `firestore:"amount" json:"amount"`
	Period      BudgetPeriod `firestore:"period" json:"period"`
	StartDate   time.Time    `firestore:"startDate" json:"start_date"`
	EndDate     time.Time    `firestore:"endDate" json:"end_date"`
	SpentAmount float64      `firestore:"spentAmount" json:"spent_amount"`
	IsActive    bool         `firestore:"isActive" json:"is_active"`
}

// MonthlyLimit normalizes the limit to a monthly equivalent.
func (b *Budget) MonthlyLimit() float64 {
	switch b.Period {
	case BudgetPeriodWeekly:
		return b.Amount * 52 / 12
	case BudgetPeriodYearly:
		return b.Amount / 12
	default:
		return b.Amount
	}
}

// Validate checks the fields the engine depends on.
func (b *Budget) Validate() error {
	if b.Amount < 0 {
		return fmt.Errorf("budget %s: amount must not be negative", b.ID)
	}
	if b.Category == "" {
		return fmt.Errorf("budget %s: category is required", b.ID)
	}
	return nil
}

// RecomputeSpent returns a copy of b whose SpentAmount is the total of expense
// magnitudes dated within [StartDate, EndDate] in b's category. A zero EndDate
// leaves the range open-ended. b itself is not modified.
func RecomputeSpent(b Budget, txns []*Transaction) Budget {
	var spent float64
	for _, t := range txns {
		if t == nil || !t.IsExpense() || !strings.EqualFold(t.Category, b.Category) {
			continue
		}
		if t.Date.Before(b.StartDate) {
			continue
		}
		if !b.EndDate.IsZero() && t.Date.After(b.EndDate) {
			continue
		}
		spent += t.Amount
	}
	b.SpentAmount = spent
	return b
}

// BudgetProgress reports how much of a budget has been used as of a date.
type BudgetProgress struct {
	BudgetID       string    `json:"budget_id"`
	Allocated      float64   `json:"allocated"`
	Spent          float64   `json:"spent"`
	Remaining      float64   `json:"remaining"`
	PercentageUsed float64   `json:"percentage_used"`
	DaysRemaining  int       `json:"days_remaining"`
	AsOf           time.Time `json:"as_of"`
}

// ProgressOf recomputes b's spend from txns dated on or before asOf.
func ProgressOf(b Budget, txns []*Transaction, asOf time.Time) BudgetProgress {
	upTo := make([]*Transaction, 0, len(txns))
	for _, t := range txns {
		if t != nil && !t.Date.After(asOf) {
			upTo = append(upTo, t)
		}
	}
	spent := RecomputeSpent(b, upTo).SpentAmount

	p := BudgetProgress{
		BudgetID:  b.ID,
		Allocated: b.Amount,
		Spent:     spent,
		Remaining: b.Amount - spent,
		AsOf:      asOf,
	}
	if b.Amount > 0 {
		p.PercentageUsed = spent / b.Amount * 100
	}
	if !b.EndDate.IsZero() && b.EndDate.After(asOf) {
		p.DaysRemaining = int(b.EndDate.Sub(asOf).Hours() / 24)
	}
	return p
}
