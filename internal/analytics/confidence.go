package analytics

import (
	"math"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

const (
	baseConfidence    = 0.5
	maxConfidence     = 0.95
	recentActivityMin = 20
)

// OverallConfidence scores how much the user's dataset as a whole can be
// trusted, from its size and how active it has been recently.
func OverallConfidence(txns []*model.Transaction, now time.Time) float64 {
	var count int
	for _, t := range txns {
		if t != nil {
			count++
		}
	}

	confidence := baseConfidence
	switch {
	case count >= 100:
		confidence += 0.3
	case count >= 50:
		confidence += 0.2
	case count >= 20:
		confidence += 0.1
	}

	if len(Filter(txns, AnyKind, TrailingWindow(now, recentMonths))) > recentActivityMin {
		confidence += 0.1
	}
	return math.Min(confidence, maxConfidence)
}
