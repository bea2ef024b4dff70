package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/google/uuid"
)

// AnomalyType classifies why a transaction was flagged.
type AnomalyType int

const (
	AnomalyAmountOutlier AnomalyType = iota + 1
	AnomalyNewMerchant
)

func (t AnomalyType) String() string {
	switch t {
	case AnomalyAmountOutlier:
		return "Amount Outlier"
	case AnomalyNewMerchant:
		return "New Merchant"
	default:
		return "Unknown"
	}
}

// AnomalySeverity orders anomalies; higher is more severe.
type AnomalySeverity int

const (
	SeverityLow AnomalySeverity = iota + 1
	SeverityMedium
	SeverityHigh
)

func (s AnomalySeverity) String() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

const (
	defaultLookbackDays   = 90
	defaultSensitivity    = 0.5
	minCategorySamples    = 10
	highSeverityZScore    = 3.0
	mediumSeverityZScore  = 2.5
	newMerchantDescPrefix = "New merchant: "
)

// AnomalyOptions tunes DetectAnomalies. Zero values pick the defaults.
// Sensitivity is in (0, 1]: 0.5 flags |z| > 2 and 1.0 flags |z| > 1.
type AnomalyOptions struct {
	LookbackDays int
	Sensitivity  float64
}

// Anomaly is one flagged expense.
type Anomaly struct {
	ID             string
	TransactionID  string
	Description    string
	Category       string
	Amount         float64
	ExpectedAmount float64
	ZScore         float64
	Date           time.Time
	Type           AnomalyType
	Severity       AnomalySeverity
}

// AnomalyReport summarizes a detection run.
type AnomalyReport struct {
	Anomalies      []Anomaly
	AnomalousTotal float64
	TopCategory    string
}

// DetectAnomalies flags expenses that are unusually large or small for their
// category, plus one-off merchants, within the lookback window ending at now.
func DetectAnomalies(txns []*model.Transaction, opts AnomalyOptions, now time.Time) AnomalyReport {
	lookback := opts.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}
	sensitivity := opts.Sensitivity
	if sensitivity <= 0 {
		sensitivity = defaultSensitivity
	}
	sensitivity = math.Min(sensitivity, 1)
	threshold := 3.0 - sensitivity*2.0

	expenses := Filter(txns, Expenses, Window{Start: now.AddDate(0, 0, -lookback), End: now})

	byCategory := make(map[string][]*model.Transaction)
	merchantCounts := make(map[string]int)
	for _, t := range expenses {
		cat := categoryKey(t)
		byCategory[cat] = append(byCategory[cat], t)
		if desc := strings.TrimSpace(t.Description); desc != "" {
			merchantCounts[desc]++
		}
	}

	var anomalies []Anomaly
	for cat, group := range byCategory {
		if len(group) < minCategorySamples {
			continue
		}
		amounts := make([]float64, len(group))
		for i, t := range group {
			amounts[i] = t.Amount
		}
		avg := mean(amounts)
		std := populationStdDev(amounts)
		if std == 0 {
			continue
		}

		for _, t := range group {
			z := (t.Amount - avg) / std
			absZ := math.Abs(z)
			if absZ <= threshold {
				continue
			}
			severity := SeverityLow
			switch {
			case absZ > highSeverityZScore:
				severity = SeverityHigh
			case absZ > mediumSeverityZScore:
				severity = SeverityMedium
			}
			anomalies = append(anomalies, Anomaly{
				ID:             anomalyID(t, AnomalyAmountOutlier),
				TransactionID:  t.ID,
				Description:    t.Description,
				Category:       cat,
				Amount:         t.Amount,
				ExpectedAmount: avg,
				ZScore:         z,
				Date:           t.Date,
				Type:           AnomalyAmountOutlier,
				Severity:       severity,
			})
		}
	}

	for _, t := range expenses {
		desc := strings.TrimSpace(t.Description)
		if desc == "" || merchantCounts[desc] != 1 {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			ID:            anomalyID(t, AnomalyNewMerchant),
			TransactionID: t.ID,
			Description:   newMerchantDescPrefix + desc,
			Category:      categoryKey(t),
			Amount:        t.Amount,
			Date:          t.Date,
			Type:          AnomalyNewMerchant,
			Severity:      SeverityLow,
		})
	}

	sort.Slice(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity > anomalies[j].Severity
		}
		if anomalies[i].Amount != anomalies[j].Amount {
			return anomalies[i].Amount > anomalies[j].Amount
		}
		if anomalies[i].TransactionID != anomalies[j].TransactionID {
			return anomalies[i].TransactionID < anomalies[j].TransactionID
		}
		return anomalies[i].Type < anomalies[j].Type
	})

	return summarizeAnomalies(anomalies)
}

func summarizeAnomalies(anomalies []Anomaly) AnomalyReport {
	report := AnomalyReport{Anomalies: anomalies}
	counts := make(map[string]int)
	for _, a := range anomalies {
		report.AnomalousTotal += a.Amount
		counts[a.Category]++
	}
	var topCount int
	for cat, n := range counts {
		if n > topCount || (n == topCount && cat < report.TopCategory) {
			topCount = n
			report.TopCategory = cat
		}
	}
	return report
}

// Describe renders an anomaly as a single line for reports.
func (a Anomaly) Describe() string {
	if a.Type == AnomalyNewMerchant {
		return fmt.Sprintf("[%s] %s %s on %s", a.Severity, a.Description, money(a.Amount), a.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("[%s] %s in %s: %s vs typical %s (z=%.2f) on %s",
		a.Severity, a.Description, displayName(a.Category), money(a.Amount), money(a.ExpectedAmount), a.ZScore, a.Date.Format("2006-01-02"))
}

// anomalyID is a name-based uuid so repeated runs over the same data agree.
func anomalyID(t *model.Transaction, typ AnomalyType) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(t.ID+"/"+typ.String())).String()
}
