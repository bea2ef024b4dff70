package analytics

import (
	"fmt"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/model"
)

// InsufficientIncomeInsight is the only goal produced when no income was
// recorded this month.
const InsufficientIncomeInsight = "Not enough income data this month to suggest savings goals. Add your income to get personalized targets."

const (
	emergencyFundMonths = 6
	homeFundMonths      = 60
	vehicleFundMonths   = 12
)

// SavingsGoals derives savings targets from this month's income and expenses.
func SavingsGoals(txns []*model.Transaction, now time.Time) []string {
	month := Filter(txns, AnyKind, CalendarMonth(now, 0))
	income := Sum(month, Incomes)
	expense := Sum(month, Expenses)
	if income <= 0 {
		return []string{InsufficientIncomeInsight}
	}

	rate := (income - expense) / income * 100
	goals := []string{
		fmt.Sprintf("Emergency fund goal: save %s to cover %d months of expenses.", money(expense*emergencyFundMonths), emergencyFundMonths),
	}

	switch {
	case rate < 10:
		goals = append(goals, fmt.Sprintf("Your savings rate is %s. Start by aiming to save 10%% of your income (%s per month).", percent(rate), money(income*0.10)))
	case rate < 20:
		goals = append(goals, fmt.Sprintf("Your savings rate is %s. Next goal: save 20%% of your income (%s per month).", percent(rate), money(income*0.20)))
	default:
		goals = append(goals, fmt.Sprintf("Excellent savings rate of %s! Consider investing your surplus for long-term growth.", percent(rate)))
	}

	return append(goals,
		fmt.Sprintf("Home fund goal: %s (%d months of income).", money(income*homeFundMonths), homeFundMonths),
		fmt.Sprintf("Vehicle fund goal: %s (%d months of income).", money(income*vehicleFundMonths), vehicleFundMonths),
	)
}
