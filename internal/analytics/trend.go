package analytics

import (
	"math"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

const (
	// DefaultHorizon is the number of months forecast when none is given.
	DefaultHorizon = 6

	trendLookbackMonths    = 12
	minTrendMonths         = 3
	seasonalMinMonths      = 12
	recentMonths           = 3
	trendConfidenceFloor   = 0.3
	trendConfidenceCeiling = 0.95

	// directionThreshold is the percentage change that separates a trend from noise.
	directionThreshold = 10.0
)

// TrendForecast is the output of ForecastTrend. Points is empty when the
// history is too short to fit a trend.
type TrendForecast struct {
	Points        []model.ForecastPoint
	History       []MonthlyTotal
	Slope         float64
	RecentAverage float64
	StdDev        float64
	// Seasonal is indexed by time.Month-1.
	Seasonal [12]float64
}

// Sufficient reports whether enough history existed to forecast.
func (f TrendForecast) Sufficient() bool { return len(f.Points) > 0 }

// ForecastTrend projects total monthly expenses horizon months ahead of now
// using a linear trend over the trailing twelve months, scaled by
// month-of-year multipliers once a full year of history is available.
func ForecastTrend(txns []*model.Transaction, horizon int, now time.Time) TrendForecast {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	window := Filter(txns, Expenses, TrailingWindow(now, trendLookbackMonths))
	history := MonthlyTotals(window, Expenses)

	result := TrendForecast{History: history, Seasonal: flatSeasonal()}
	if len(history) < minTrendMonths {
		return result
	}

	totals := totalsOf(history)
	result.Slope = linearSlope(totals)
	result.StdDev = populationStdDev(totals)
	result.RecentAverage = mean(totals[len(totals)-recentMonths:])
	if len(history) >= seasonalMinMonths {
		result.Seasonal = seasonalFactors(history)
	}

	confidence := varianceConfidence(result.StdDev, result.RecentAverage, trendConfidenceFloor, trendConfidenceCeiling)
	base := MonthStart(now)
	result.Points = make([]model.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		month := base.AddDate(0, i, 0)
		predicted := (result.RecentAverage + result.Slope*float64(i)) * result.Seasonal[month.Month()-1]
		result.Points = append(result.Points, model.ForecastPoint{
			Month:           month,
			PredictedAmount: math.Max(0, predicted),
			ConfidenceScore: confidence,
			Category:        model.TotalCategory,
		})
	}
	return result
}

func flatSeasonal() [12]float64 {
	var s [12]float64
	for i := range s {
		s[i] = 1
	}
	return s
}

// seasonalFactors divides each month-of-year's average total by the global
// average. Months missing from the history keep a neutral factor.
func seasonalFactors(history []MonthlyTotal) [12]float64 {
	factors := flatSeasonal()
	global := mean(totalsOf(history))
	if global <= 0 {
		return factors
	}

	var sums [12]float64
	var counts [12]int
	for _, m := range history {
		idx := m.Month.Month() - 1
		sums[idx] += m.Total
		counts[idx]++
	}
	for i := range factors {
		if counts[i] > 0 {
			factors[i] = (sums[i] / float64(counts[i])) / global
		}
	}
	return factors
}

// DirectionOf compares raw expense totals in the trailing three months against
// the three months before them.
func DirectionOf(txns []*model.Transaction, now time.Time) model.TrendDirection {
	recentWindow := TrailingWindow(now, recentMonths)
	priorWindow := Window{Start: now.AddDate(0, -2*recentMonths, 0), End: recentWindow.Start}

	recent := Sum(Filter(txns, Expenses, recentWindow), Expenses)
	prior := Sum(Filter(txns, Expenses, priorWindow), Expenses)

	change, ok := percentChange(recent, prior)
	switch {
	case !ok:
		return model.TrendStable
	case change > directionThreshold:
		return model.TrendIncreasing
	case change < -directionThreshold:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}
