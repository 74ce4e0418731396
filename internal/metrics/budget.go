package metrics

import (
	"math"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"
)

// Budget status tiers.
const (
	BudgetGood     = "good"
	BudgetWarning  = "warning"
	BudgetExceeded = "exceeded"
)

// BudgetUsage is the derived state of one budget at a point in time.
type BudgetUsage struct {
	Spent      float64 `json:"spent"`
	Percentage int     `json:"percentage"`
	Status     string  `json:"status"`
	Remaining  float64 `json:"remaining"`
}

// Percentage returns round(value/total*100), with a zero total defined as 0.
func Percentage(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}

// PeriodWindow returns the half-open [start, end) budget window that
// contains now. Windows advance from startDate one month or one year at
// a time; before startDate the first window applies.
func PeriodWindow(period string, startDate, now time.Time) (time.Time, time.Time) {
	months, years := 1, 0
	if period == "yearly" {
		months, years = 0, 1
	}

	start := startDate
	for {
		end := start.AddDate(years, months, 0)
		if now.Before(end) || start.After(now) {
			return start, end
		}
		start = end
	}
}

// BudgetConsumption sums the expense transactions matching the budget's
// category inside its current period window and derives usage.
func BudgetConsumption(b models.Budget, txs []models.Transaction, now time.Time) BudgetUsage {
	start, end := PeriodWindow(b.Period, b.StartDate, now)

	var spent float64
	for _, t := range txs {
		if t.Type != "expense" || t.Category != b.Category {
			continue
		}
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		spent += t.Amount
	}

	pct := Percentage(spent, b.Amount)
	status := BudgetGood
	switch {
	case pct >= 100:
		status = BudgetExceeded
	case pct >= 80:
		status = BudgetWarning
	}

	return BudgetUsage{
		Spent:      spent,
		Percentage: pct,
		Status:     status,
		Remaining:  math.Max(b.Amount-spent, 0),
	}
}
