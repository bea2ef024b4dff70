package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Thareesha98/FinanceML-sub002/internal/analytics"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const monthLayout = "Jan 2006"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func bullets(p *message.Printer, w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	p.Fprintf(w, "%s\n", title)
	for _, line := range lines {
		p.Fprintf(w, "  - %s\n", line)
	}
	p.Fprintln(w)
}

func renderForecast(w io.Writer, result model.ForecastResult) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Trend: %s   Overall confidence: %.0f%%\n\n", result.TrendDirection, result.OverallConfidence*100)

	if len(result.MonthlyForecasts) > 0 {
		tw := newTable(w)
		p.Fprintln(tw, "MONTH\tPREDICTED\tCONFIDENCE")
		for _, pt := range result.MonthlyForecasts {
			p.Fprintf(tw, "%s\t$%.2f\t%.0f%%\n", pt.Month.Format(monthLayout), pt.PredictedAmount, pt.ConfidenceScore*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		p.Fprintln(w)
	}

	if len(result.CategoryForecasts) > 0 {
		tw := newTable(w)
		p.Fprintln(tw, "CATEGORY\tNEXT MONTH\tCONFIDENCE")
		for _, pt := range result.CategoryForecasts {
			p.Fprintf(tw, "%s\t$%.2f\t%.0f%%\n", pt.Category, pt.PredictedAmount, pt.ConfidenceScore*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		p.Fprintln(w)
	}

	bullets(p, w, "Insights", result.Insights)
	return nil
}

func renderInsights(w io.Writer, report model.InsightReport) error {
	p := message.NewPrinter(language.English)
	h := report.Health
	p.Fprintf(w, "Financial health: %d/100 (%s)\n", h.Score, h.Label)
	p.Fprintf(w, "  savings %d  diversity %d  consistency %d  budgeting %d\n\n", h.SavingsRate, h.Diversity, h.Consistency, h.Budgeting)

	bullets(p, w, "Spending", report.Spending)
	bullets(p, w, "Budgets", report.Recommendations)
	bullets(p, w, "Savings goals", report.Goals)
	return nil
}

func renderHistory(w io.Writer, category string, history []analytics.MonthlyTotal) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%s\n", strings.TrimSpace(category))
	tw := newTable(w)
	p.Fprintln(tw, "MONTH\tTOTAL\tCOUNT")
	for _, m := range history {
		p.Fprintf(tw, "%s\t$%.2f\t%d\n", m.Month.Format(monthLayout), m.Total, m.Count)
	}
	return tw.Flush()
}

func renderAnomalies(w io.Writer, report analytics.AnomalyReport) error {
	p := message.NewPrinter(language.English)
	if len(report.Anomalies) == 0 {
		p.Fprintln(w, "No anomalies found.")
		return nil
	}
	p.Fprintf(w, "%d anomalies totalling $%.2f, mostly in %s\n\n", len(report.Anomalies), report.AnomalousTotal, report.TopCategory)
	for _, a := range report.Anomalies {
		p.Fprintf(w, "%s\n", a.Describe())
	}
	return nil
}

func renderRecurring(w io.Writer, charges []analytics.RecurringCharge) error {
	p := message.NewPrinter(language.English)
	if len(charges) == 0 {
		p.Fprintln(w, "No recurring charges found.")
		return nil
	}
	tw := newTable(w)
	p.Fprintln(tw, "NAME\tCATEGORY\tAMOUNT\tFREQUENCY\tNEXT\tCONFIDENCE")
	for _, c := range charges {
		p.Fprintf(tw, "%s\t%s\t$%.2f\t%s\t%s\t%.0f%%\n",
			c.Name, c.Category, c.AverageAmount, c.Frequency, c.ExpectedNext.Format("2006-01-02"), c.Confidence*100)
	}
	return tw.Flush()
}

func renderProgress(w io.Writer, b *model.Budget, progress *model.BudgetProgress) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "%s (%s, %s): $%.2f of $%.2f spent, $%.2f left (%.1f%%)",
		b.Name, b.Category, b.Period, progress.Spent, progress.Allocated, progress.Remaining, progress.PercentageUsed)
	if err != nil {
		return err
	}
	if progress.DaysRemaining > 0 {
		p.Fprintf(w, ", %d days remaining", progress.DaysRemaining)
	}
	_, err = fmt.Fprintln(w)
	return err
}
