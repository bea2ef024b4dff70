package store

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/logger"
	"github.com/Thareesha98/FinanceML-sub002/internal/model"
	"github.com/google/uuid"
)

// DefaultSeed makes SeedDemo reproducible across runs.
const DefaultSeed int64 = 42

const seedMonths = 6

type expenseTemplate struct {
	description string
	minAmount   float64
	maxAmount   float64
	category    string
}

var monthlyBills = []expenseTemplate{
	{"Rent payment", 2200, 2200, "Housing"},
	{"Electricity bill", 120, 220, "Utilities"},
	{"Water bill", 45, 75, "Utilities"},
	{"Internet bill", 89, 89, "Utilities"},
	{"Phone bill", 65, 85, "Utilities"},
	{"Car insurance", 145, 145, "Transportation"},
	{"Netflix", 22.99, 22.99, "Entertainment"},
	{"Spotify", 12.99, 12.99, "Entertainment"},
	{"Gym membership", 65, 65, "Healthcare"},
	{"Home insurance", 125, 125, "Housing"},
}

var weeklyBills = []expenseTemplate{
	{"Grocery shopping", 80, 200, "Food"},
	{"Petrol", 55, 110, "Transportation"},
}

var randomExpenses = []expenseTemplate{
	{"Coffee", 4.5, 8, "Food"},
	{"Lunch out", 15, 35, "Food"},
	{"Dinner at restaurant", 45, 120, "Food"},
	{"Takeaway", 20, 55, "Food"},
	{"Uber ride", 12, 45, "Transportation"},
	{"Parking", 5, 20, "Transportation"},
	{"Movie tickets", 18, 40, "Entertainment"},
	{"Books", 15, 45, "Entertainment"},
	{"Clothing", 40, 200, "Shopping"},
	{"Electronics", 50, 350, "Shopping"},
	{"Home supplies", 15, 80, "Shopping"},
	{"Pharmacy", 10, 60, "Healthcare"},
	{"Doctor visit", 50, 150, "Healthcare"},
	{"Online course", 30, 200, "Education"},
	{"Flight tickets", 200, 800, "Travel"},
}

var demoBudgets = []struct {
	name     string
	category string
	amount   float64
	period   model.BudgetPeriod
}{
	{"Food & Dining", "Food", 1200, model.BudgetPeriodMonthly},
	{"Housing", "Housing", 2500, model.BudgetPeriodMonthly},
	{"Transport", "Transportation", 500, model.BudgetPeriodMonthly},
	{"Entertainment", "Entertainment", 250, model.BudgetPeriodMonthly},
	{"Utilities", "Utilities", 400, model.BudgetPeriodMonthly},
	{"Shopping", "Shopping", 100, model.BudgetPeriodWeekly},
	{"Travel", "Travel", 3000, model.BudgetPeriodYearly},
}

// SeedSummary counts what SeedDemo wrote.
type SeedSummary struct {
	Transactions int
	Budgets      int
}

// SeedDemo writes six months of realistic, deterministic demo data for userID
// ending at now. Amounts are generated signed, the way bank exports record
// them, and normalized with model.FromSigned before they are stored.
func SeedDemo(ctx context.Context, st Store, userID string, now time.Time, seed int64) (SeedSummary, error) {
	rng := rand.New(rand.NewSource(seed))
	start := now.AddDate(0, -seedMonths, 0)

	var txns []*model.Transaction
	add := func(desc, category string, signed float64, date time.Time) {
		amount, kind := model.FromSigned(math.Round(signed*100) / 100)
		txns = append(txns, &model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Date:        date,
			Description: desc,
			Category:    category,
			Amount:      amount,
			Kind:        kind,
			CreatedAt:   date,
		})
	}

	for _, tmpl := range monthlyBills {
		for m := 0; m < seedMonths; m++ {
			date := start.AddDate(0, m, rng.Intn(5))
			if date.Before(now) {
				add(tmpl.description, tmpl.category, -randAmount(rng, tmpl.minAmount, tmpl.maxAmount), date)
			}
		}
	}
	for _, tmpl := range weeklyBills {
		for d := start; d.Before(now); d = d.AddDate(0, 0, 6+rng.Intn(3)) {
			add(tmpl.description, tmpl.category, -randAmount(rng, tmpl.minAmount, tmpl.maxAmount), d)
		}
	}

	for d := start; d.Before(now); d = d.AddDate(0, 0, 1) {
		n := 1 + rng.Intn(3)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			n += rng.Intn(2)
		}
		if d.Month() == time.December && d.Day() >= 15 {
			n += 2 + rng.Intn(3)
		}
		for i := 0; i < n; i++ {
			tmpl := randomExpenses[rng.Intn(len(randomExpenses))]
			amount := randAmount(rng, tmpl.minAmount, tmpl.maxAmount)
			// Occasional unusually large purchase.
			if rng.Intn(50) == 0 {
				amount *= 3 + rng.Float64()*2
			}
			add(tmpl.description, tmpl.category, -amount, d)
		}
	}

	for m := 0; m <= seedMonths; m++ {
		payday := time.Date(start.Year(), start.Month()+time.Month(m), 15, 0, 0, 0, 0, time.UTC)
		if !payday.Before(start) && payday.Before(now) {
			add("Software Engineer Salary", "Salary", 8500+rng.Float64()*200-100, payday)
		}
	}
	for _, m := range []int{1, 3, 5} {
		if date := start.AddDate(0, m, 10+rng.Intn(10)); date.Before(now) {
			add("Freelance project", "Freelance", 800+rng.Float64()*1200, date)
		}
	}
	for m := 0; m < seedMonths; m += 3 {
		if date := start.AddDate(0, m, 25); date.Before(now) {
			add("Investment dividends", "Investments", 200+rng.Float64()*150, date)
		}
	}

	if err := st.BatchCreateTransactions(ctx, txns); err != nil {
		return SeedSummary{}, fmt.Errorf("seed transactions: %w", err)
	}

	summary := SeedSummary{Transactions: len(txns)}
	for _, b := range demoBudgets {
		budget := &model.Budget{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      b.name,
			Category:  b.category,
			Amount:    b.amount,
			Period:    b.period,
			StartDate: start,
			IsActive:  true,
		}
		*budget = model.RecomputeSpent(*budget, txns)
		if err := st.CreateBudget(ctx, budget); err != nil {
			return summary, fmt.Errorf("seed budget %q: %w", b.name, err)
		}
		summary.Budgets++
	}
	log := logger.FromContext(ctx)
	log.Debug().
		Str("user_id", userID).
		Int("transactions", summary.Transactions).
		Int("budgets", summary.Budgets).
		Msg("demo data seeded")
	return summary, nil
}

func randAmount(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
