// Package analytics turns a user's transactions and budgets into forecasts,
// narrative insights and a financial health score. Everything except Engine
// is a pure function of its arguments.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DataSource yields one user's transactions and budgets page by page. An
// empty next-page token ends the listing. store.Store and warehouse.Source
// both satisfy it.
type DataSource interface {
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error)
	ListBudgets(ctx context.Context, userID string, includeInactive bool, pageSize int32, pageToken string) ([]*model.Budget, string, error)
}

// ForecastOptions controls a forecast run. A zero Horizon uses
// DefaultHorizon and a zero Now uses the current time.
type ForecastOptions struct {
	Horizon int
	Now     time.Time
}

// Forecast runs the trend, category and confidence engines over txns and
// narrates the result.
func Forecast(txns []*model.Transaction, opts ForecastOptions) (model.ForecastResult, error) {
	if opts.Horizon < 0 {
		return model.ForecastResult{}, invalidInput("horizon must not be negative, got %d", opts.Horizon)
	}
	if err := validateTransactions(txns); err != nil {
		return model.ForecastResult{}, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	trend := ForecastTrend(txns, opts.Horizon, now)
	result := model.ForecastResult{
		MonthlyForecasts:  trend.Points,
		CategoryForecasts: ForecastCategories(txns, now),
		OverallConfidence: OverallConfidence(txns, now),
		TrendDirection:    DirectionOf(txns, now),
	}
	if !trend.Sufficient() {
		result.Insights = []string{InsufficientHistoryInsight}
		return result, nil
	}
	result.Insights = Narrate(result, now)
	return result, nil
}

// Insights runs the rule engines and the health score over txns and budgets.
func Insights(txns []*model.Transaction, budgets []*model.Budget, now time.Time) (model.InsightReport, error) {
	if err := validateTransactions(txns); err != nil {
		return model.InsightReport{}, err
	}
	if err := validateBudgets(budgets); err != nil {
		return model.InsightReport{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	report := model.InsightReport{Health: FinancialHealth(txns, budgets, now)}
	if len(txns) == 0 {
		report.Spending = []string{FirstTransactionInsight}
		report.Insights = []string{FirstTransactionInsight}
		return report, nil
	}

	report.Spending = SpendingInsights(txns, now)
	report.Recommendations = BudgetRecommendations(txns, budgets, now)
	report.Goals = SavingsGoals(txns, now)

	report.Insights = make([]string, 0, len(report.Spending)+len(report.Recommendations)+len(report.Goals))
	report.Insights = append(report.Insights, report.Spending...)
	report.Insights = append(report.Insights, report.Recommendations...)
	report.Insights = append(report.Insights, report.Goals...)
	return report, nil
}

func validateTransactions(txns []*model.Transaction) error {
	for i, t := range txns {
		if t == nil {
			return invalidInput("transaction %d is nil", i)
		}
		if err := t.Validate(); err != nil {
			return &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("transaction %d", i), Cause: err}
		}
	}
	return nil
}

func validateBudgets(budgets []*model.Budget) error {
	for i, b := range budgets {
		if b == nil {
			return invalidInput("budget %d is nil", i)
		}
		if err := b.Validate(); err != nil {
			return &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("budget %d", i), Cause: err}
		}
	}
	return nil
}

const defaultPageSize = 500

// Engine loads a user's data from a DataSource and runs the pure analytics
// over it.
type Engine struct {
	source   DataSource
	log      zerolog.Logger
	pageSize int32
	clock    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithPageSize sets how many rows are requested per page.
func WithPageSize(n int32) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithClock replaces time.Now for calls that do not pass an explicit time.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates an Engine reading from source.
func NewEngine(source DataSource, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		log:      zerolog.Nop(),
		pageSize: defaultPageSize,
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateForecast loads userID's transactions and forecasts their spending.
func (e *Engine) GenerateForecast(ctx context.Context, userID string, opts ForecastOptions) (model.ForecastResult, error) {
	if userID == "" {
		return model.ForecastResult{}, invalidInput("user ID is required")
	}
	if opts.Now.IsZero() {
		opts.Now = e.clock()
	}
	txns, err := e.loadTransactions(ctx, userID, nil)
	if err != nil {
		return model.ForecastResult{}, err
	}

	result, err := Forecast(txns, opts)
	if err != nil {
		return model.ForecastResult{}, err
	}
	e.log.Debug().
		Str("user_id", userID).
		Int("transactions", len(txns)).
		Int("monthly_points", len(result.MonthlyForecasts)).
		Int("category_points", len(result.CategoryForecasts)).
		Str("trend", result.TrendDirection.String()).
		Msg("forecast generated")
	return result, nil
}

// GenerateInsights loads userID's transactions and budgets concurrently and
// produces the insight report.
func (e *Engine) GenerateInsights(ctx context.Context, userID string, now time.Time) (model.InsightReport, error) {
	if userID == "" {
		return model.InsightReport{}, invalidInput("user ID is required")
	}
	if now.IsZero() {
		now = e.clock()
	}

	var (
		txns    []*model.Transaction
		budgets []*model.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = e.loadTransactions(gctx, userID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = e.loadBudgets(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.InsightReport{}, err
	}

	report, err := Insights(txns, budgets, now)
	if err != nil {
		return model.InsightReport{}, err
	}
	e.log.Debug().
		Str("user_id", userID).
		Int("transactions", len(txns)).
		Int("budgets", len(budgets)).
		Int("score", report.Score()).
		Str("label", report.Label()).
		Msg("insights generated")
	return report, nil
}

// DetectAnomalies loads the lookback window for userID and flags unusual
// expenses.
func (e *Engine) DetectAnomalies(ctx context.Context, userID string, opts AnomalyOptions, now time.Time) (AnomalyReport, error) {
	if userID == "" {
		return AnomalyReport{}, invalidInput("user ID is required")
	}
	if now.IsZero() {
		now = e.clock()
	}
	lookback := opts.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}
	start := now.AddDate(0, 0, -lookback)
	txns, err := e.loadTransactions(ctx, userID, &Window{Start: start, End: now})
	if err != nil {
		return AnomalyReport{}, err
	}
	if err := validateTransactions(txns); err != nil {
		return AnomalyReport{}, err
	}
	report := DetectAnomalies(txns, opts, now)
	e.log.Debug().Str("user_id", userID).Int("anomalies", len(report.Anomalies)).Msg("anomaly detection complete")
	return report, nil
}

// DetectRecurring loads all of userID's transactions and looks for recurring
// charges.
func (e *Engine) DetectRecurring(ctx context.Context, userID string) ([]RecurringCharge, error) {
	if userID == "" {
		return nil, invalidInput("user ID is required")
	}
	txns, err := e.loadTransactions(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	if err := validateTransactions(txns); err != nil {
		return nil, err
	}
	charges := DetectRecurring(txns)
	e.log.Debug().Str("user_id", userID).Int("recurring", len(charges)).Msg("recurring detection complete")
	return charges, nil
}

// CategoryHistory returns zero-filled monthly totals for one category.
func (e *Engine) CategoryHistory(ctx context.Context, userID, category string, months int, now time.Time) ([]MonthlyTotal, error) {
	if userID == "" {
		return nil, invalidInput("user ID is required")
	}
	if months <= 0 {
		return nil, invalidInput("months must be positive, got %d", months)
	}
	if now.IsZero() {
		now = e.clock()
	}
	w := TrailingWindow(now, months)
	w.Start = MonthStart(w.Start)
	txns, err := e.loadTransactions(ctx, userID, &w)
	if err != nil {
		return nil, err
	}
	if err := validateTransactions(txns); err != nil {
		return nil, err
	}
	return CategoryHistory(txns, category, months, now), nil
}

func (e *Engine) loadTransactions(ctx context.Context, userID string, w *Window) ([]*model.Transaction, error) {
	var start, end *time.Time
	if w != nil {
		start, end = &w.Start, &w.End
	}

	var all []*model.Transaction
	token := ""
	for {
		page, next, err := e.source.ListTransactions(ctx, userID, start, end, e.pageSize, token)
		if err != nil {
			e.log.Error().Err(err).Str("user_id", userID).Msg("failed to list transactions")
			return nil, dataSourceError("list transactions", err)
		}
		all = append(all, page...)
		if next == "" {
			break
		}
		token = next
	}
	e.log.Debug().Str("user_id", userID).Int("count", len(all)).Msg("transactions loaded")
	return all, nil
}

func (e *Engine) loadBudgets(ctx context.Context, userID string) ([]*model.Budget, error) {
	var all []*model.Budget
	token := ""
	for {
		page, next, err := e.source.ListBudgets(ctx, userID, true, e.pageSize, token)
		if err != nil {
			e.log.Error().Err(err).Str("user_id", userID).Msg("failed to list budgets")
			return nil, dataSourceError("list budgets", err)
		}
		all = append(all, page...)
		if next == "" {
			break
		}
		token = next
	}
	e.log.Debug().Str("user_id", userID).Int("count", len(all)).Msg("budgets loaded")
	return all, nil
}
