package analytics

import (
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

const healthLookbackMonths = 3

// Health score labels, best first.
const (
	HealthExcellent        = "Excellent"
	HealthGood             = "Good"
	HealthFair             = "Fair"
	HealthNeedsImprovement = "Needs Improvement"
	HealthGettingStarted   = "Getting Started"
)

// FinancialHealth scores the trailing three months out of 100 across savings
// rate, category diversity, consistency of tracking and whether any budget
// exists.
func FinancialHealth(txns []*model.Transaction, budgets []*model.Budget, now time.Time) model.HealthScore {
	window := Filter(txns, AnyKind, TrailingWindow(now, healthLookbackMonths))
	if len(window) == 0 {
		return model.HealthScore{Score: 0, Label: HealthGettingStarted}
	}

	hs := model.HealthScore{
		SavingsRate: savingsRatePoints(Sum(window, Incomes), Sum(window, Expenses)),
		Diversity:   diversityPoints(len(CategoryTotals(window, Expenses))),
		Consistency: consistencyPoints(len(MonthlyTotals(window, AnyKind))),
	}
	if countNonNilBudgets(budgets) > 0 {
		hs.Budgeting = 20
	}
	hs.Score = hs.SavingsRate + hs.Diversity + hs.Consistency + hs.Budgeting
	hs.Label = healthLabel(hs.Score)
	return hs
}

func savingsRatePoints(income, expense float64) int {
	if income <= 0 {
		return 0
	}
	rate := (income - expense) / income * 100
	switch {
	case rate >= 20:
		return 40
	case rate >= 10:
		return 25
	case rate >= 0:
		return 10
	default:
		return 0
	}
}

func diversityPoints(categories int) int {
	switch {
	case categories >= 5:
		return 20
	case categories >= 3:
		return 15
	case categories >= 1:
		return 5
	default:
		return 0
	}
}

func consistencyPoints(months int) int {
	switch {
	case months >= 3:
		return 20
	case months >= 2:
		return 10
	default:
		return 0
	}
}

func healthLabel(score int) string {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthFair
	case score >= 20:
		return HealthNeedsImprovement
	default:
		return HealthGettingStarted
	}
}

func countNonNilBudgets(budgets []*model.Budget) int {
	var n int
	for _, b := range budgets {
		if b != nil {
			n++
		}
	}
	return n
}
