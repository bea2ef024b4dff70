package analytics

import (
	"fmt"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

// InsufficientHistoryInsight replaces the narrative when there is too little
// history to forecast.
const InsufficientHistoryInsight = "Not enough transaction history to generate a forecast yet. Keep tracking your expenses for at least 3 months."

var seasonalMessages = map[string]string{
	"winter": "Winter months often bring holiday and heating costs. Plan ahead for seasonal bills.",
	"spring": "Spring is a good time to review subscriptions and recurring expenses.",
	"summer": "Summer travel and activities can raise spending. Consider setting aside a travel budget.",
	"autumn": "Back-to-school and early holiday shopping start in autumn. Budget for gifts early.",
}

// Narrate turns a completed forecast into statements, in a fixed order:
// trend, confidence, next month's total, top category, seasonal advice.
func Narrate(result model.ForecastResult, now time.Time) []string {
	insights := []string{
		trendStatement(result.TrendDirection),
		fmt.Sprintf("Forecast confidence: %.0f%%", result.OverallConfidence*100),
	}

	if len(result.MonthlyForecasts) > 0 {
		insights = append(insights, fmt.Sprintf("Next month's predicted spending: %s", money(result.MonthlyForecasts[0].PredictedAmount)))
	}
	if len(result.CategoryForecasts) > 0 {
		top := result.CategoryForecasts[0]
		insights = append(insights, fmt.Sprintf("Highest predicted category next month: %s (%s)", displayName(top.Category), money(top.PredictedAmount)))
	}

	return append(insights, seasonalMessages[season(now.Month())])
}

func trendStatement(d model.TrendDirection) string {
	switch d {
	case model.TrendIncreasing:
		return "Your spending is trending upward compared to the previous three months."
	case model.TrendDecreasing:
		return "Your spending is trending downward compared to the previous three months. Keep it up!"
	default:
		return "Your spending has been stable over the last few months."
	}
}

func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
