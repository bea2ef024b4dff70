// Package warehouse reads transactions and budgets from BigQuery for
// read-only analytics.
package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/Thareesha98/FinanceML-sub002/internal/store"
	"google.golang.org/api/iterator"
)

const defaultPageSize = 500

// Source lists rows from the transactions and budgets tables of one dataset.
// It satisfies analytics.DataSource.
type Source struct {
	client  *bigquery.Client
	dataset string
}

// NewSource creates a BigQuery client for projectID reading from dataset.
func NewSource(ctx context.Context, projectID, dataset string) (*Source, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewSource: creating client: %w", err)
	}
	return &Source{client: client, dataset: dataset}, nil
}

// Close closes the BigQuery client connection.
func (s *Source) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

type query struct {
	sql    string
	params []bigquery.QueryParameter
}

// transactionQuery selects one page of userID's transactions. Date bounds are
// inclusive and compared as calendar dates.
func transactionQuery(dataset, userID string, startDate, endDate *time.Time, limit, offset int) query {
	var where strings.Builder
	where.WriteString("user_id = @user_id")
	params := []bigquery.QueryParameter{{Name: "user_id", Value: userID}}
	if startDate != nil {
		where.WriteString("\n\t\t  AND transaction_date >= @start_date")
		params = append(params, bigquery.QueryParameter{Name: "start_date", Value: civil.DateOf(*startDate)})
	}
	if endDate != nil {
		where.WriteString("\n\t\t  AND transaction_date <= @end_date")
		params = append(params, bigquery.QueryParameter{Name: "end_date", Value: civil.DateOf(*endDate)})
	}
	params = append(params,
		bigquery.QueryParameter{Name: "limit", Value: limit},
		bigquery.QueryParameter{Name: "offset", Value: offset},
	)

	sql := fmt.Sprintf(`
		SELECT
			transaction_id,
			user_id,
			transaction_date,
			amount,
			currency,
			raw_description,
			category_name,
			direction,
			created_ts
		FROM %s.transactions
		WHERE %s
		ORDER BY transaction_date, transaction_id
		LIMIT @limit OFFSET @offset
	`, dataset, where.String())
	return query{sql: sql, params: params}
}

func budgetQuery(dataset, userID string, includeInactive bool, limit, offset int) query {
	where := "user_id = @user_id"
	if !includeInactive {
		where += " AND is_active"
	}
	sql := fmt.Sprintf(`
		SELECT
			budget_id,
			user_id,
			name,
			category_name,
			amount,
			period,
			start_date,
			end_date,
			is_active
		FROM %s.budgets
		WHERE %s
		ORDER BY budget_id
		LIMIT @limit OFFSET @offset
	`, dataset, where)
	return query{sql: sql, params: []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "limit", Value: limit},
		{Name: "offset", Value: offset},
	}}
}

// pageBounds decodes pageToken into a row offset and returns the limit that
// fetches one lookahead row.
func pageBounds(pageSize int32, pageToken string) (limit, offset int, err error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageToken != "" {
		raw, err := store.DecodePageToken(pageToken)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page token: %w", err)
		}
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid page token %q", pageToken)
		}
	}
	return int(pageSize) + 1, offset, nil
}

// nextToken reports the token for the page after one that returned n rows,
// or "" when the lookahead row was not present.
func nextToken(n, limit, offset int) string {
	if n < limit {
		return ""
	}
	return store.EncodePageToken(strconv.Itoa(offset + limit - 1))
}

// ListTransactions returns one page of userID's transactions, oldest first.
func (s *Source) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	limit, offset, err := pageBounds(pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}
	qs := transactionQuery(s.dataset, userID, startDate, endDate, limit, offset)
	q := s.client.Query(qs.sql)
	q.Parameters = qs.params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("ListTransactions: query read: %w", err)
	}

	var rows []*TransactionRow
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("ListTransactions: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	next := nextToken(len(rows), limit, offset)
	if next != "" {
		rows = rows[:limit-1]
	}
	txns := make([]*model.Transaction, 0, len(rows))
	for _, r := range rows {
		txn, err := r.ToModel()
		if err != nil {
			return nil, "", err
		}
		txns = append(txns, txn)
	}
	return txns, next, nil
}

// ListBudgets returns one page of userID's budgets.
func (s *Source) ListBudgets(ctx context.Context, userID string, includeInactive bool, pageSize int32, pageToken string) ([]*model.Budget, string, error) {
	limit, offset, err := pageBounds(pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}
	qs := budgetQuery(s.dataset, userID, includeInactive, limit, offset)
	q := s.client.Query(qs.sql)
	q.Parameters = qs.params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("ListBudgets: query read: %w", err)
	}

	var rows []*BudgetRow
	for {
		var r BudgetRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("ListBudgets: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	next := nextToken(len(rows), limit, offset)
	if next != "" {
		rows = rows[:limit-1]
	}
	budgets := make([]*model.Budget, 0, len(rows))
	for _, r := range rows {
		b, err := r.ToModel()
		if err != nil {
			return nil, "", err
		}
		budgets = append(budgets, b)
	}
	return budgets, next, nil
}
