package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/analytics"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--now", "2025-06-15", "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "finsight", root.Use)
	assert.Contains(t, root.Short, "Forecast spending")

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"forecast", "insights", "history", "anomalies", "recurring", "progress", "seed"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCommandsAgainstDemoData(t *testing.T) {
	t.Run("forecast", func(t *testing.T) {
		out, err := run(t, "forecast", "--horizon", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "Jul 2025")
		assert.Contains(t, out, "Sep 2025")
		assert.NotContains(t, out, "Oct 2025")
		assert.Contains(t, out, "Next month's predicted spending")
	})

	t.Run("insights", func(t *testing.T) {
		out, err := run(t, "insights")
		require.NoError(t, err)
		assert.Contains(t, out, "Financial health:")
		assert.Contains(t, out, "budgeting 20")
		assert.Contains(t, out, "Savings goals")
	})

	t.Run("history", func(t *testing.T) {
		out, err := run(t, "history", "food", "--months", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "Mar 2025")
		assert.Contains(t, out, "Jun 2025")
	})

	t.Run("anomalies", func(t *testing.T) {
		_, err := run(t, "anomalies", "--sensitivity", "1")
		require.NoError(t, err)
	})

	t.Run("recurring", func(t *testing.T) {
		out, err := run(t, "recurring")
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("progress of every active budget", func(t *testing.T) {
		out, err := run(t, "progress")
		require.NoError(t, err)
		assert.Contains(t, out, "Food & Dining")
		assert.Contains(t, out, "Travel (Travel, yearly)")
	})

	t.Run("unknown budget", func(t *testing.T) {
		_, err := run(t, "progress", "missing")
		assert.ErrorContains(t, err, "no budget with ID missing")
	})

	t.Run("seed on the memory backend", func(t *testing.T) {
		out, err := run(t, "seed")
		require.NoError(t, err)
		assert.Contains(t, out, "seeded on every run")
	})
}

func TestCommandErrors(t *testing.T) {
	t.Run("bad reference date", func(t *testing.T) {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"forecast", "--now", "15/06/2025"})
		assert.ErrorContains(t, root.Execute(), "invalid --now")
	})

	t.Run("bigquery needs a project", func(t *testing.T) {
		_, err := run(t, "forecast", "--backend", "bigquery")
		assert.ErrorContains(t, err, "bigquery.project_id")
	})

	t.Run("history needs positive months", func(t *testing.T) {
		_, err := run(t, "history", "food", "--months", "0")
		assert.True(t, analytics.IsCode(err, analytics.ErrInvalidInput))
	})
}

func TestRenderForecast(t *testing.T) {
	result := model.ForecastResult{
		MonthlyForecasts: []model.ForecastPoint{
			{Month: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), PredictedAmount: 1234.5, ConfidenceScore: 0.8, Category: model.TotalCategory},
		},
		CategoryForecasts: []model.ForecastPoint{{Category: "Food", PredictedAmount: 420, ConfidenceScore: 0.5}},
		OverallConfidence: 0.6,
		TrendDirection:    model.TrendIncreasing,
		Insights:          []string{"first", "second"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderForecast(&buf, result))
	out := buf.String()
	assert.Contains(t, out, "Trend: Increasing")
	assert.Contains(t, out, "Jul 2025")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "  - second")
}

func TestRenderProgress(t *testing.T) {
	b := &model.Budget{Name: "Groceries", Category: "Food", Period: model.BudgetPeriodMonthly}
	progress := &model.BudgetProgress{Allocated: 200, Spent: 50, Remaining: 150, PercentageUsed: 25, DaysRemaining: 20}

	var buf bytes.Buffer
	require.NoError(t, renderProgress(&buf, b, progress))
	assert.Equal(t, "Groceries (Food, monthly): $50.00 of $200.00 spent, $150.00 left (25.0%), 20 days remaining\n", buf.String())
}

func TestRenderEmptyReports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderAnomalies(&buf, analytics.AnomalyReport{}))
	require.NoError(t, renderRecurring(&buf, nil))
	assert.Equal(t, "No anomalies found.\nNo recurring charges found.\n", buf.String())
}
