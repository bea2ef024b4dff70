package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

// Frequency is the cadence of a recurring charge.
type Frequency int

const (
	FrequencyUnspecified Frequency = iota
	FrequencyWeekly
	FrequencyFortnightly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyAnnually
)

func (f Frequency) String() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyFortnightly:
		return "Fortnightly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencyAnnually:
		return "Annually"
	default:
		return "Unspecified"
	}
}

// Next advances t by one period.
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyFortnightly:
		return t.AddDate(0, 0, 14)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyAnnually:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

const minRecurringConfidence = 0.5

// RecurringCharge is an expense pattern that repeats at a regular interval.
type RecurringCharge struct {
	Name           string
	NormalizedName string
	Category       string
	AverageAmount  float64
	Frequency      Frequency
	Confidence     float64
	Occurrences    int
	LastSeen       time.Time
	ExpectedNext   time.Time
	TransactionIDs []string
}

// DetectRecurring looks for expenses with the same description that repeat
// on a weekly to annual cadence with consistent amounts.
func DetectRecurring(txns []*model.Transaction) []RecurringCharge {
	groups := make(map[string][]*model.Transaction)
	for _, t := range txns {
		if t == nil || !t.IsExpense() {
			continue
		}
		key := normalizeMerchant(t.Description)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var results []RecurringCharge
	for name, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		var intervals []float64
		for i := 1; i < len(group); i++ {
			days := group[i].Date.Sub(group[i-1].Date).Hours() / 24
			if days > 0 {
				intervals = append(intervals, days)
			}
		}
		freq, freqConfidence := detectFrequency(intervals)
		if freq == FrequencyUnspecified {
			continue
		}

		amounts := make([]float64, len(group))
		for i, t := range group {
			amounts[i] = t.Amount
		}
		avg := mean(amounts)
		amountConfidence := 1.0
		if avg > 0 {
			cv := math.Sqrt(sampleVariance(amounts, avg)) / avg
			switch {
			case cv > 0.25:
				amountConfidence = 0.3
			case cv > 0.10:
				amountConfidence = 0.7
			}
		}

		occurrenceBoost := math.Min(float64(len(group))/5.0, 1.0)
		confidence := freqConfidence * amountConfidence * (0.5 + 0.5*occurrenceBoost)
		if confidence < minRecurringConfidence {
			continue
		}

		ids := make([]string, len(group))
		for i, t := range group {
			ids[i] = t.ID
		}
		last := group[len(group)-1]
		results = append(results, RecurringCharge{
			Name:           strings.TrimSpace(group[0].Description),
			NormalizedName: name,
			Category:       mostCommonCategory(group),
			AverageAmount:  math.Round(avg*100) / 100,
			Frequency:      freq,
			Confidence:     math.Round(confidence*100) / 100,
			Occurrences:    len(group),
			LastSeen:       last.Date,
			ExpectedNext:   freq.Next(last.Date),
			TransactionIDs: ids,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].NormalizedName < results[j].NormalizedName
	})
	return results
}

func normalizeMerchant(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type frequencyWindow struct {
	freq     Frequency
	min, max float64
}

var frequencyWindows = []frequencyWindow{
	{FrequencyWeekly, 5, 9},
	{FrequencyFortnightly, 12, 16},
	{FrequencyMonthly, 27, 34},
	{FrequencyQuarterly, 85, 95},
	{FrequencyAnnually, 355, 375},
}

// detectFrequency matches the mean interval to a cadence and returns the
// share of intervals that fall inside that cadence's window.
func detectFrequency(intervals []float64) (Frequency, float64) {
	if len(intervals) == 0 {
		return FrequencyUnspecified, 0
	}
	avg := mean(intervals)
	for _, w := range frequencyWindows {
		if avg < w.min || avg > w.max {
			continue
		}
		var matches int
		for _, d := range intervals {
			if d >= w.min && d <= w.max {
				matches++
			}
		}
		return w.freq, float64(matches) / float64(len(intervals))
	}
	return FrequencyUnspecified, 0
}

func mostCommonCategory(txns []*model.Transaction) string {
	counts := make(map[string]int)
	for _, t := range txns {
		counts[categoryKey(t)]++
	}
	var best string
	var bestCount int
	for cat, n := range counts {
		if n > bestCount || (n == bestCount && cat < best) {
			best, bestCount = cat, n
		}
	}
	return best
}
