package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/google/uuid"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[string]*model.Transaction
	budgets      map[string]*model.Budget
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
		budgets:      make(map[string]*model.Budget),
	}
}

// paginateIDs applies cursor-based pagination to a sorted slice of IDs.
// Returns the paginated IDs and the next page token (empty if no more pages).
func paginateIDs(ids []string, pageSize int32, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(ids)

	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err == nil {
			startIdx := sort.SearchStrings(ids, cursorID)
			if startIdx < len(ids) && ids[startIdx] == cursorID {
				startIdx++
			}
			ids = ids[startIdx:]
		}
	}

	var nextToken string
	if int32(len(ids)) > pageSize {
		nextToken = EncodePageToken(ids[pageSize-1])
		ids = ids[:pageSize]
	}

	return ids, nextToken
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	m.transactions[txn.ID] = txn
	return nil
}

// BatchCreateTransactions creates multiple transactions in the memory store.
func (m *MemoryStore) BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	for _, txn := range txns {
		if txn.ID == "" {
			txn.ID = uuid.New().String()
		}
		if txn.CreatedAt.IsZero() {
			txn.CreatedAt = now
		}
		m.transactions[txn.ID] = txn
	}
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.transactions[txnID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}

	return txn, nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[txn.ID]; !ok {
		return fmt.Errorf("transaction %s: %w", txn.ID, ErrNotFound)
	}

	m.transactions[txn.ID] = txn
	return nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txnID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.transactions, txnID)
	return nil
}

// ListTransactions returns userID's transactions dated within
// [startDate, endDate]; either bound may be nil.
func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matchingIDs []string
	for id, txn := range m.transactions {
		if userID != "" && txn.UserID != userID {
			continue
		}
		if startDate != nil && txn.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && txn.Date.After(*endDate) {
			continue
		}
		matchingIDs = append(matchingIDs, id)
	}

	paginatedIDs, nextToken := paginateIDs(matchingIDs, pageSize, pageToken)
	result := make([]*model.Transaction, 0, len(paginatedIDs))
	for _, id := range paginatedIDs {
		result = append(result, m.transactions[id])
	}
	return result, nextToken, nil
}

// Budget operations

func (m *MemoryStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	m.budgets[budget.ID] = budget
	return nil
}

func (m *MemoryStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budget, ok := m.budgets[budgetID]
	if !ok {
		return nil, fmt.Errorf("budget %s: %w", budgetID, ErrNotFound)
	}

	return budget, nil
}

func (m *MemoryStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[budget.ID]; !ok {
		return fmt.Errorf("budget %s: %w", budget.ID, ErrNotFound)
	}

	m.budgets[budget.ID] = budget
	return nil
}

func (m *MemoryStore) DeleteBudget(ctx context.Context, budgetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.budgets, budgetID)
	return nil
}

func (m *MemoryStore) ListBudgets(ctx context.Context, userID string, includeInactive bool, pageSize int32, pageToken string) ([]*model.Budget, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matchingIDs []string
	for id, budget := range m.budgets {
		if userID != "" && budget.UserID != userID {
			continue
		}
		if !includeInactive && !budget.IsActive {
			continue
		}
		matchingIDs = append(matchingIDs, id)
	}

	paginatedIDs, nextToken := paginateIDs(matchingIDs, pageSize, pageToken)
	result := make([]*model.Budget, 0, len(paginatedIDs))
	for _, id := range paginatedIDs {
		result = append(result, m.budgets[id])
	}
	return result, nextToken, nil
}

// GetBudgetProgress recomputes the budget's spend from the stored
// transactions of its owner.
func (m *MemoryStore) GetBudgetProgress(ctx context.Context, budgetID string, asOfDate time.Time) (*model.BudgetProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budget, ok := m.budgets[budgetID]
	if !ok {
		return nil, fmt.Errorf("budget %s: %w", budgetID, ErrNotFound)
	}

	var owned []*model.Transaction
	for _, txn := range m.transactions {
		if budget.UserID != "" && txn.UserID != budget.UserID {
			continue
		}
		owned = append(owned, txn)
	}

	progress := model.ProgressOf(*budget, owned, asOfDate)
	return &progress, nil
}
