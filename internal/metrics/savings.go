package metrics

import "github.com/Jepersonsam/my-finance-app/internal/models"

// SavingsProgress is the derived state of a savings goal.
type SavingsProgress struct {
	Percentage int  `json:"percentage"`
	Completed  bool `json:"completed"`
}

// Progress derives completion state for a savings goal. A completed
// goal no longer accepts deposits.
func Progress(s models.Saving) SavingsProgress {
	return SavingsProgress{
		Percentage: Percentage(s.CurrentAmount, s.TargetAmount),
		Completed:  s.CurrentAmount >= s.TargetAmount,
	}
}
