package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

const (
	categoryLookbackMonths    = 6
	minCategoryTransactions   = 3
	minCategoryMonths         = 2
	categoryConfidenceFloor   = 0.2
	categoryConfidenceCeiling = 0.9
)

// ForecastCategories predicts next month's spend for every category with
// enough recent history. Results are ordered by predicted amount, largest
// first, with ties broken by category name.
func ForecastCategories(txns []*model.Transaction, now time.Time) []model.ForecastPoint {
	window := Filter(txns, Expenses, TrailingWindow(now, categoryLookbackMonths))

	counts := make(map[string]int)
	for _, t := range window {
		counts[categoryKey(t)]++
	}

	series := make(map[string][]float64)
	for _, m := range MonthlyCategoryTotals(window, Expenses) {
		series[m.Category] = append(series[m.Category], m.Total)
	}

	next := MonthStart(now).AddDate(0, 1, 0)
	var points []model.ForecastPoint
	for category, totals := range series {
		if counts[category] < minCategoryTransactions || len(totals) < minCategoryMonths {
			continue
		}
		average := mean(totals)
		slope := linearSlope(totals)
		points = append(points, model.ForecastPoint{
			Month:           next,
			PredictedAmount: math.Max(0, average+slope),
			ConfidenceScore: varianceConfidence(populationStdDev(totals), average, categoryConfidenceFloor, categoryConfidenceCeiling),
			Category:        category,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].PredictedAmount != points[j].PredictedAmount {
			return points[i].PredictedAmount > points[j].PredictedAmount
		}
		return points[i].Category < points[j].Category
	})
	return points
}

// CategoryHistory returns the raw expense total for category in every calendar
// month overlapping the trailing window, oldest first. Months without
// spending are reported as zero so the series can be charted directly.
func CategoryHistory(txns []*model.Transaction, category string, months int, now time.Time) []MonthlyTotal {
	if months <= 0 {
		return nil
	}
	window := TrailingWindow(now, months)
	inCategory := func(t *model.Transaction) bool {
		return t.IsExpense() && strings.EqualFold(categoryKey(t), strings.TrimSpace(category))
	}

	byMonth := make(map[time.Time]MonthlyTotal)
	for _, m := range MonthlyTotals(Filter(txns, inCategory, window), inCategory) {
		byMonth[m.Month] = m
	}

	var out []MonthlyTotal
	for month := MonthStart(window.Start); month.Before(window.End); month = month.AddDate(0, 1, 0) {
		m, ok := byMonth[month]
		if !ok {
			m = MonthlyTotal{Month: month}
		}
		m.Category = category
		out = append(out, m)
	}
	return out
}
