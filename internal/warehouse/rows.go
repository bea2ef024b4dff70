package warehouse

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

// TransactionRow is one row of the transactions table. Amount is a signed
// NUMERIC, negative for money leaving the account, unless Direction is set;
// then Amount is read as a magnitude and Direction decides the kind.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	UserID string `bigquery:"user_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"` // REQUIRED STRING

	RawDescription string              `bigquery:"raw_description"` // REQUIRED STRING
	CategoryName   bigquery.NullString `bigquery:"category_name"`   // NULLABLE
	Direction      bigquery.NullString `bigquery:"direction"`       // NULLABLE income | expense

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
}

// BudgetRow is one row of the budgets table.
type BudgetRow struct {
	BudgetID     string              `bigquery:"budget_id"`     // REQUIRED
	UserID       string              `bigquery:"user_id"`       // REQUIRED
	Name         string              `bigquery:"name"`          // REQUIRED
	CategoryName bigquery.NullString `bigquery:"category_name"` // NULLABLE
	Amount       *big.Rat            `bigquery:"amount"`        // REQUIRED NUMERIC
	Period       string              `bigquery:"period"`        // weekly | monthly | yearly
	StartDate    bigquery.NullDate   `bigquery:"start_date"`    // NULLABLE
	EndDate      bigquery.NullDate   `bigquery:"end_date"`      // NULLABLE
	IsActive     bool                `bigquery:"is_active"`
}

// ToModel converts the row into the engine's unsigned representation.
func (r *TransactionRow) ToModel() (*model.Transaction, error) {
	if r.Amount == nil {
		return nil, fmt.Errorf("transaction %s: amount is NULL", r.TransactionID)
	}
	if !r.TransactionDate.IsValid() {
		return nil, fmt.Errorf("transaction %s: invalid date %v", r.TransactionID, r.TransactionDate)
	}
	signed, _ := r.Amount.Float64()
	amount, kind := model.FromSigned(signed)
	if r.Direction.Valid && strings.TrimSpace(r.Direction.StringVal) != "" {
		k, err := model.ParseKind(strings.TrimSpace(r.Direction.StringVal))
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", r.TransactionID, err)
		}
		amount, kind = math.Abs(signed), k
	}

	var category string
	if r.CategoryName.Valid {
		category = strings.TrimSpace(r.CategoryName.StringVal)
	}
	return &model.Transaction{
		ID:          r.TransactionID,
		UserID:      r.UserID,
		Date:        r.TransactionDate.In(time.UTC),
		Description: r.RawDescription,
		Category:    category,
		Amount:      amount,
		Kind:        kind,
		CreatedAt:   r.CreatedTS.UTC(),
	}, nil
}

// ToModel converts the row into a model.Budget. SpentAmount is left at zero;
// the warehouse does not track it.
func (r *BudgetRow) ToModel() (*model.Budget, error) {
	if r.Amount == nil {
		return nil, fmt.Errorf("budget %s: amount is NULL", r.BudgetID)
	}
	period, err := model.ParseBudgetPeriod(r.Period)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", r.BudgetID, err)
	}
	amount, _ := r.Amount.Float64()

	b := &model.Budget{
		ID:       r.BudgetID,
		UserID:   r.UserID,
		Name:     r.Name,
		Amount:   amount,
		Period:   period,
		IsActive: r.IsActive,
	}
	if r.CategoryName.Valid {
		b.Category = strings.TrimSpace(r.CategoryName.StringVal)
	}
	if r.StartDate.Valid {
		b.StartDate = r.StartDate.Date.In(time.UTC)
	}
	if r.EndDate.Valid {
		b.EndDate = r.EndDate.Date.In(time.UTC)
	}
	return b, nil
}
