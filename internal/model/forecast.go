package model

import "time"

// TotalCategory is the sentinel category for whole-of-spend forecast points.
const TotalCategory = "Total"

// TrendDirection summarizes recent movement in expense totals.
type TrendDirection int

const (
	TrendStable TrendDirection = iota
	TrendIncreasing
	TrendDecreasing
)

func (d TrendDirection) String() string {
	switch d {
	case TrendIncreasing:
		return "Increasing"
	case TrendDecreasing:
		return "Decreasing"
	default:
		return "Stable"
	}
}

// ForecastPoint is one predicted month.
type ForecastPoint struct {
	Month           time.Time `json:"month"`
	PredictedAmount float64   `json:"predicted_amount"`
	ConfidenceScore float64   `json:"confidence_score"`
	Category        string    `json:"category"`
}

// ForecastResult bundles everything the forecast use-case produces.
type ForecastResult struct {
	MonthlyForecasts  []ForecastPoint `json:"monthly_forecasts"`
	CategoryForecasts []ForecastPoint `json:"category_forecasts"`
	OverallConfidence float64         `json:"overall_confidence"`
	TrendDirection    TrendDirection  `json:"trend_direction"`
	Insights          []string        `json:"insights"`
}

// HealthScore is the composite 0-100 financial health score.
type HealthScore struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	SavingsRate int    `json:"savings_rate_points"`
	Diversity   int    `json:"diversity_points"`
	Consistency int    `json:"consistency_points"`
	Budgeting   int    `json:"budgeting_points"`
}

// InsightReport is the output of the insights/score use-case.
type InsightReport struct {
	Insights        []string    `json:"insights"`
	Spending        []string    `json:"spending"`
	Recommendations []string    `json:"recommendations"`
	Goals           []string    `json:"goals"`
	Health          HealthScore `json:"health"`
}

// Score is a shorthand for Health.Score.
func (r *InsightReport) Score() int { return r.Health.Score }

// Label is a shorthand for Health.Label.
func (r *InsightReport) Label() string { return r.Health.Label }
