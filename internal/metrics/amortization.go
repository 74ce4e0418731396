package metrics

import (
	"math"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"
)

// DaysUntilDue returns the number of days from now until due, rounded
// up. Negative means the due date has passed.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// dueFlags derives the due-soon (0-7 days inclusive) and overdue flags.
// Completed entities are never overdue.
func dueFlags(due *time.Time, now time.Time, completed bool) (daysUntilDue *int, dueSoon, overdue bool) {
	if due == nil {
		return nil, false, false
	}
	d := DaysUntilDue(*due, now)
	return &d, d >= 0 && d <= 7, d < 0 && !completed
}

// InstallmentState is the derived state of an installment plan.
type InstallmentState struct {
	Remaining         float64 `json:"remaining"`
	InstallmentAmount float64 `json:"installment_amount"`
	Percentage        int     `json:"percentage"`
	Completed         bool    `json:"completed"`
	DaysUntilDue      *int    `json:"days_until_due"`
	DueSoon           bool    `json:"due_soon"`
	Overdue           bool    `json:"overdue"`
}

// InstallmentMetrics derives remaining balance and due state for an
// installment plan. The per-installment amount is total/count.
func InstallmentMetrics(i models.Installment, now time.Time) InstallmentState {
	count := i.Installments
	if count < 1 {
		count = 1
	}

	completed := i.PaidAmount >= i.TotalAmount
	days, dueSoon, overdue := dueFlags(i.DueDate, now, completed)

	return InstallmentState{
		Remaining:         math.Max(i.TotalAmount-i.PaidAmount, 0),
		InstallmentAmount: i.TotalAmount / float64(count),
		Percentage:        Percentage(i.PaidAmount, i.TotalAmount),
		Completed:         completed,
		DaysUntilDue:      days,
		DueSoon:           dueSoon,
		Overdue:           overdue,
	}
}

// DebtState is the derived state of a debt.
type DebtState struct {
	Remaining         float64  `json:"remaining"`
	TotalWithInterest *float64 `json:"total_with_interest,omitempty"`
	Percentage        int      `json:"percentage"`
	Completed         bool     `json:"completed"`
	DaysUntilDue      *int     `json:"days_until_due"`
	DueSoon           bool     `json:"due_soon"`
	Overdue           bool     `json:"overdue"`
}

// TotalWithInterest applies simple interest to the outstanding balance.
func TotalWithInterest(remaining, rate float64) float64 {
	return remaining + remaining*rate/100
}

// DebtMetrics derives remaining balance, interest-adjusted total and
// due state for a debt. The interest total is only reported when the
// rate is positive.
func DebtMetrics(d models.Debt, now time.Time) DebtState {
	remaining := d.TotalAmount - d.PaidAmount
	completed := d.PaidAmount >= d.TotalAmount
	days, dueSoon, overdue := dueFlags(d.DueDate, now, completed)

	state := DebtState{
		Remaining:    math.Max(remaining, 0),
		Percentage:   Percentage(d.PaidAmount, d.TotalAmount),
		Completed:    completed,
		DaysUntilDue: days,
		DueSoon:      dueSoon,
		Overdue:      overdue,
	}
	if d.InterestRate > 0 {
		total := TotalWithInterest(remaining, d.InterestRate)
		state.TotalWithInterest = &total
	}
	return state
}
