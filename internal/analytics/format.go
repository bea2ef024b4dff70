package analytics

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// A cases.Caser is stateful, so formatters are built per call rather than
// shared between concurrent callers.

// money renders an amount as "$1,234.56".
func money(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", amount)
}

// wholeMoney renders an amount without cents, e.g. "$1,235".
func wholeMoney(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.0f", amount)
}

// percent renders a percentage with one decimal place, e.g. "30.0%".
func percent(p float64) string {
	return message.NewPrinter(language.English).Sprintf("%.1f%%", p)
}

// displayName title-cases a category or merchant label for narration while
// leaving acronyms such as "ATM" intact.
func displayName(s string) string {
	return cases.Title(language.English, cases.NoLower).String(strings.TrimSpace(s))
}
