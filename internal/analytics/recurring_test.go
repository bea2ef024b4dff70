package analytics

import (
	"testing"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRecurring(t *testing.T) {
	var txns []*model.Transaction
	for m := time.January; m <= time.May; m++ {
		txns = append(txns, expense("Entertainment", "Netflix", 15.99, time.Date(2025, m, 1, 9, 0, 0, 0, time.UTC)))
	}
	gymStart := time.Date(2025, time.May, 5, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		txns = append(txns, expense("Health", "Gym ", 20, gymStart.AddDate(0, 0, 7*i)))
	}
	// Irregular and inconsistent patterns that should not qualify.
	txns = append(txns,
		expense("Food", "Pizza Place", 30, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		expense("Food", "Pizza Place", 30, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)),
		expense("Food", "Pizza Place", 30, time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)),
		expense("Utilities", "Power Co", 10, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
		expense("Utilities", "Power Co", 30, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)),
		income("Salary", 5000, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)),
		income("Salary", 5000, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)),
	)

	got := DetectRecurring(txns)
	require.Len(t, got, 2)

	netflix := got[0]
	assert.Equal(t, "netflix", netflix.NormalizedName)
	assert.Equal(t, "Netflix", netflix.Name)
	assert.Equal(t, FrequencyMonthly, netflix.Frequency)
	assert.Equal(t, 1.0, netflix.Confidence)
	assert.Equal(t, 15.99, netflix.AverageAmount)
	assert.Equal(t, 5, netflix.Occurrences)
	assert.Equal(t, "Entertainment", netflix.Category)
	assert.Equal(t, time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC), netflix.ExpectedNext)
	assert.Len(t, netflix.TransactionIDs, 5)

	gym := got[1]
	assert.Equal(t, "Gym", gym.Name)
	assert.Equal(t, FrequencyWeekly, gym.Frequency)
	assert.InDelta(t, 0.9, gym.Confidence, 1e-9)
	assert.Equal(t, gymStart.AddDate(0, 0, 28), gym.ExpectedNext)
}

func TestDetectFrequency(t *testing.T) {
	tests := []struct {
		name      string
		intervals []float64
		want      Frequency
		ratio     float64
	}{
		{"weekly", []float64{7, 7, 7}, FrequencyWeekly, 1},
		{"fortnightly", []float64{14, 14}, FrequencyFortnightly, 1},
		{"monthly with a stray", []float64{31, 30, 28, 40, 28}, FrequencyMonthly, 0.8},
		{"quarterly", []float64{91, 92}, FrequencyQuarterly, 1},
		{"annually", []float64{365}, FrequencyAnnually, 1},
		{"no match", []float64{20, 22}, FrequencyUnspecified, 0},
		{"empty", nil, FrequencyUnspecified, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, ratio := detectFrequency(tt.intervals)
			assert.Equal(t, tt.want, freq)
			assert.InDelta(t, tt.ratio, ratio, 1e-9)
		})
	}
}
