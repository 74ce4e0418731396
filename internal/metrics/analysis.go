package metrics

import (
	"fmt"
	"sort"

	"github.com/Jepersonsam/my-finance-app/internal/models"
)

// CategorySum is one category's total expense.
type CategorySum struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Totals sums income and expense over all transactions.
func Totals(txs []models.Transaction) (income, expense float64) {
	for _, t := range txs {
		if t.Type == "income" {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}
	return income, expense
}

// ExpenseByCategory groups expense transactions by category, summed
// and sorted descending by total. Ties keep a stable category order.
func ExpenseByCategory(txs []models.Transaction) []CategorySum {
	sums := make(map[string]float64)
	for _, t := range txs {
		if t.Type == "expense" {
			sums[t.Category] += t.Amount
		}
	}

	out := make([]CategorySum, 0, len(sums))
	for cat, total := range sums {
		out = append(out, CategorySum{Category: cat, Total: total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SavingsRate returns (income-expense)/income*100, 0 when there is no
// income.
func SavingsRate(income, expense float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - expense) / income * 100
}

// Insights evaluates the spending insight rules: one savings-rate
// entry, plus a concentration warning when the top category takes more
// than 40% of total expense.
func Insights(txs []models.Transaction) []Recommendation {
	income, expense := Totals(txs)
	rate := SavingsRate(income, expense)

	var insights []Recommendation
	switch {
	case rate < 0:
		insights = append(insights, Recommendation{
			Type:    "warning",
			Message: "Pengeluaran Anda melebihi pemasukan. Segera evaluasi anggaran Anda.",
		})
	case rate < 20:
		insights = append(insights, Recommendation{
			Type:    "info",
			Message: "Tingkat tabungan Anda masih rendah. Usahakan menabung minimal 20% dari pemasukan.",
		})
	default:
		insights = append(insights, Recommendation{
			Type:    "success",
			Message: "Tingkat tabungan Anda baik. Pertahankan!",
		})
	}

	categories := ExpenseByCategory(txs)
	if len(categories) > 0 && expense > 0 {
		top := categories[0]
		share := top.Total / expense * 100
		if share > 40 {
			insights = append(insights, Recommendation{
				Type:    "warning",
				Message: fmt.Sprintf("%s mengambil %.1f%% dari total pengeluaran. Pertimbangkan untuk mengurangi.", top.Category, share),
			})
		}
	}

	return insights
}
