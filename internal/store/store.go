package store

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned, wrapped with the requested ID, when a document
// does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for transactions and budgets.
// It satisfies analytics.DataSource.
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error
	GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, txnID string) error
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error)

	// Budget operations
	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, budgetID string) (*model.Budget, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	ListBudgets(ctx context.Context, userID string, includeInactive bool, pageSize int32, pageToken string) ([]*model.Budget, string, error)
	GetBudgetProgress(ctx context.Context, budgetID string, asOfDate time.Time) (*model.BudgetProgress, error)
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
