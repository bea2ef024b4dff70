package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"

	// firestoreBatchLimit is the maximum number of writes in one batch.
	firestoreBatchLimit = 500
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// notFound maps Firestore's NotFound status onto ErrNotFound.
func notFound(kind, id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
}

// applyDateAwarePagination handles pagination for queries with date range filters.
// Firestore requires OrderBy on inequality fields first, so we use OrderBy("date") + OrderBy(__name__).
// The cursor must include both the date value and the document ID.
func (s *FirestoreStore) applyDateAwarePagination(ctx context.Context, query firestore.Query, collection string, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy("date", firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		cursorDoc, err := s.client.Collection(collection).Doc(docID).Get(ctx)
		if err != nil {
			return query, fmt.Errorf("failed to fetch cursor document: %w", err)
		}
		query = query.StartAfter(cursorDoc.Data()["date"], docID)
	}

	query = query.Limit(int(normalizePageSize(pageSize)) + 1)
	return query, nil
}

// applyCursorPagination adds OrderBy + StartAfter + Limit to a query for cursor-based pagination.
// It fetches pageSize+1 docs so the caller can detect whether a next page exists.
func (s *FirestoreStore) applyCursorPagination(query firestore.Query, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		query = query.StartAfter(docID)
	}

	query = query.Limit(int(normalizePageSize(pageSize)) + 1)
	return query, nil
}

func normalizePageSize(pageSize int32) int32 {
	if pageSize <= 0 {
		return 100
	}
	return pageSize
}

// trimPage drops the lookahead document and returns the token for the next page.
func trimPage(docs []*firestore.DocumentSnapshot, pageSize int32) ([]*firestore.DocumentSnapshot, string) {
	pageSize = normalizePageSize(pageSize)
	if len(docs) <= int(pageSize) {
		return docs, ""
	}
	docs = docs[:pageSize]
	return docs, EncodePageToken(docs[pageSize-1].Ref.ID)
}

// Transaction operations

// CreateTransaction creates a new transaction in Firestore
func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn.ID == "" {
		txn.ID = s.client.Collection(transactionsCollection).NewDoc().ID
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	_, err := s.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, txn)
	return err
}

// BatchCreateTransactions writes transactions in chunks of firestoreBatchLimit.
func (s *FirestoreStore) BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error {
	col := s.client.Collection(transactionsCollection)
	now := time.Now().UTC()
	for start := 0; start < len(txns); start += firestoreBatchLimit {
		end := min(start+firestoreBatchLimit, len(txns))
		bw := s.client.BulkWriter(ctx)
		for _, txn := range txns[start:end] {
			if txn.ID == "" {
				txn.ID = col.NewDoc().ID
			}
			if txn.CreatedAt.IsZero() {
				txn.CreatedAt = now
			}
			if _, err := bw.Set(col.Doc(txn.ID), txn); err != nil {
				bw.End()
				return fmt.Errorf("failed to queue transaction %s: %w", txn.ID, err)
			}
		}
		bw.End()
	}
	return nil
}

// GetTransaction retrieves a transaction from Firestore
func (s *FirestoreStore) GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txnID).Get(ctx)
	if err != nil {
		return nil, notFound("transaction", txnID, err)
	}

	var txn model.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &txn, nil
}

// UpdateTransaction updates an existing transaction in Firestore
func (s *FirestoreStore) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, txn)
	return err
}

// DeleteTransaction deletes a transaction from Firestore
func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txnID string) error {
	_, err := s.client.Collection(transactionsCollection).Doc(txnID).Delete(ctx)
	return err
}

// ListTransactions lists a user's transactions, optionally within a date range
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	query := s.client.Collection(transactionsCollection).Query
	if userID != "" {
		query = query.Where("userId", "==", userID)
	}
	if startDate != nil {
		query = query.Where("date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("date", "<=", *endDate)
	}

	var err error
	// When date range filters are present, Firestore requires OrderBy on the range
	// field first.
	if startDate != nil || endDate != nil {
		query, err = s.applyDateAwarePagination(ctx, query, transactionsCollection, pageSize, pageToken)
	} else {
		query, err = s.applyCursorPagination(query, pageSize, pageToken)
	}
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}
	docs, nextPageToken := trimPage(docs, pageSize)

	txns := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var txn model.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, "", fmt.Errorf("failed to parse transaction: %w", err)
		}
		txns = append(txns, &txn)
	}
	return txns, nextPageToken, nil
}

// Budget operations

// CreateBudget creates a new budget in Firestore
func (s *FirestoreStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	if budget.ID == "" {
		budget.ID = s.client.Collection(budgetsCollection).NewDoc().ID
	}
	_, err := s.client.Collection(budgetsCollection).Doc(budget.ID).Set(ctx, budget)
	return err
}

// GetBudget retrieves a budget from Firestore
func (s *FirestoreStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	doc, err := s.client.Collection(budgetsCollection).Doc(budgetID).Get(ctx)
	if err != nil {
		return nil, notFound("budget", budgetID, err)
	}

	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, fmt.Errorf("failed to parse budget: %w", err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget in Firestore
func (s *FirestoreStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	_, err := s.client.Collection(budgetsCollection).Doc(budget.ID).Set(ctx, budget)
	return err
}

// DeleteBudget deletes a budget from Firestore
func (s *FirestoreStore) DeleteBudget(ctx context.Context, budgetID string) error {
	_, err := s.client.Collection(budgetsCollection).Doc(budgetID).Delete(ctx)
	return err
}

// ListBudgets lists budgets for a user
func (s *FirestoreStore) ListBudgets(ctx context.Context, userID string, includeInactive bool, pageSize int32, pageToken string) ([]*model.Budget, string, error) {
	query := s.client.Collection(budgetsCollection).Query
	if userID != "" {
		query = query.Where("userId", "==", userID)
	}
	if !includeInactive {
		query = query.Where("isActive", "==", true)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list budgets: %w", err)
	}
	docs, nextPageToken := trimPage(docs, pageSize)

	budgets := make([]*model.Budget, 0, len(docs))
	for _, doc := range docs {
		var budget model.Budget
		if err := doc.DataTo(&budget); err != nil {
			return nil, "", fmt.Errorf("failed to parse budget: %w", err)
		}
		budgets = append(budgets, &budget)
	}
	return budgets, nextPageToken, nil
}

// GetBudgetProgress recomputes a budget's spend from the owner's transactions
// between the budget start and asOfDate.
func (s *FirestoreStore) GetBudgetProgress(ctx context.Context, budgetID string, asOfDate time.Time) (*model.BudgetProgress, error) {
	budget, err := s.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	query := s.client.Collection(transactionsCollection).
		Where("userId", "==", budget.UserID).
		Where("date", "<=", asOfDate)
	if !budget.StartDate.IsZero() {
		query = query.Where("date", ">=", budget.StartDate)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for budget %s: %w", budgetID, err)
	}

	txns := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var txn model.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	progress := model.ProgressOf(*budget, txns, asOfDate)
	return &progress, nil
}
