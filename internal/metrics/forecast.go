package metrics

import (
	"math"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"
)

// Indonesian short month names, January first.
var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// ForecastMonth is one projected future month.
type ForecastMonth struct {
	Month            string `json:"month"`
	PredictedIncome  int64  `json:"predicted_income"`
	PredictedExpense int64  `json:"predicted_expense"`
	PredictedBalance int64  `json:"predicted_balance"`
}

// Recommendation is a forecast or analysis advice entry.
type Recommendation struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// MonthlyAverages buckets transactions by calendar month and returns
// the mean monthly income and expense. Months without any activity do
// not contribute a bucket.
func MonthlyAverages(txs []models.Transaction) (avgIncome, avgExpense float64) {
	type bucket struct{ income, expense float64 }
	monthly := make(map[string]*bucket)

	for _, t := range txs {
		key := t.Date.Format("2006-01")
		b, ok := monthly[key]
		if !ok {
			b = &bucket{}
			monthly[key] = b
		}
		if t.Type == "income" {
			b.income += t.Amount
		} else {
			b.expense += t.Amount
		}
	}

	if len(monthly) == 0 {
		return 0, 0
	}

	var totalIncome, totalExpense float64
	for _, b := range monthly {
		totalIncome += b.income
		totalExpense += b.expense
	}
	n := float64(len(monthly))
	return totalIncome / n, totalExpense / n
}

// Forecast projects months future months from the historical monthly
// averages, applying a fixed linear trend of 2% per month. This is an
// intentionally simple heuristic, not a statistical model.
func Forecast(avgIncome, avgExpense float64, months int, now time.Time) []ForecastMonth {
	out := make([]ForecastMonth, 0, months)
	for i := 1; i <= months; i++ {
		date := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, i, 0)

		factor := 1 + float64(i-1)*0.02
		income := avgIncome * factor
		expense := avgExpense * factor

		out = append(out, ForecastMonth{
			Month:            shortMonths[date.Month()-1],
			PredictedIncome:  int64(math.Round(income)),
			PredictedExpense: int64(math.Round(expense)),
			PredictedBalance: int64(math.Round(income - expense)),
		})
	}
	return out
}

// Recommendations evaluates the forecast advice rules. The balance
// rules are exclusive and checked in order; the expense-ratio warning
// is independent and appended on top.
func Recommendations(forecast []ForecastMonth, avgIncome, avgExpense float64) []Recommendation {
	if len(forecast) == 0 {
		return nil
	}

	var totalBalance int64
	for _, m := range forecast {
		totalBalance += m.PredictedBalance
	}
	avgBalance := float64(totalBalance) / float64(len(forecast))

	var recs []Recommendation
	switch {
	case avgBalance < 0:
		recs = append(recs, Recommendation{
			Type:    "warning",
			Title:   "Perkiraan Defisit",
			Message: "Berdasarkan tren saat ini, Anda diperkirakan akan mengalami defisit. Pertimbangkan untuk mengurangi pengeluaran atau meningkatkan pemasukan.",
		})
	case avgBalance < avgIncome*0.2:
		recs = append(recs, Recommendation{
			Type:    "info",
			Title:   "Tingkat Tabungan Rendah",
			Message: "Tingkat tabungan diperkirakan rendah. Pertimbangkan untuk meningkatkan tabungan minimal 20% dari pemasukan.",
		})
	default:
		recs = append(recs, Recommendation{
			Type:    "success",
			Title:   "Proyeksi Keuangan Baik",
			Message: "Berdasarkan tren saat ini, proyeksi keuangan Anda baik. Pertahankan kebiasaan finansial ini!",
		})
	}

	if avgExpense > avgIncome*0.8 {
		recs = append(recs, Recommendation{
			Type:    "warning",
			Title:   "Pengeluaran Tinggi",
			Message: "Rasio pengeluaran terhadap pemasukan tinggi. Pertimbangkan untuk mengoptimalkan pengeluaran.",
		})
	}

	return recs
}
