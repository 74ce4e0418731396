package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/metrics"
	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/store"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler serves derived reports. Everything here is recomputed
// from freshly fetched rows on every request, nothing is cached.
type ReportHandler struct {
	TxRepo *store.Repository[models.Transaction]
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{TxRepo: store.NewRepository[models.Transaction](db)}
}

// Summary returns one month's totals and per-category breakdown.
// Month defaults to the current one, ?month=YYYY-MM overrides.
func (h *ReportHandler) Summary(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	monthStr := c.DefaultQuery("month", time.Now().Format("2006-01"))
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Month must be in YYYY-MM format")
		return
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	txs, err := h.TxRepo.List(user.ID, func(q *gorm.DB) *gorm.DB {
		return q.Where("date >= ? AND date < ?", start, end)
	})
	if err != nil {
		util.ServerError(c, err)
		return
	}

	income, expense := metrics.Totals(txs)
	c.JSON(http.StatusOK, gin.H{
		"month":             monthStr,
		"total_income":      income,
		"total_expense":     expense,
		"balance":           income - expense,
		"transaction_count": len(txs),
		"by_category":       metrics.ExpenseByCategory(txs),
	})
}

// Forecast projects 1, 3, 6 or 12 months ahead from the historical
// monthly averages.
func (h *ReportHandler) Forecast(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	months := 3
	switch c.DefaultQuery("months", "3") {
	case "1":
		months = 1
	case "3":
		months = 3
	case "6":
		months = 6
	case "12":
		months = 12
	default:
		util.Error(c, http.StatusBadRequest, "Months must be 1, 3, 6, or 12")
		return
	}

	txs, err := h.TxRepo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	avgIncome, avgExpense := metrics.MonthlyAverages(txs)
	forecast := metrics.Forecast(avgIncome, avgExpense, months, time.Now())

	var totalIncome, totalExpense, totalBalance int64
	for _, m := range forecast {
		totalIncome += m.PredictedIncome
		totalExpense += m.PredictedExpense
		totalBalance += m.PredictedBalance
	}

	c.JSON(http.StatusOK, gin.H{
		"months":      months,
		"avg_income":  avgIncome,
		"avg_expense": avgExpense,
		"forecast":    forecast,
		"totals": gin.H{
			"predicted_income":  totalIncome,
			"predicted_expense": totalExpense,
			"predicted_balance": totalBalance,
		},
		"recommendations": metrics.Recommendations(forecast, avgIncome, avgExpense),
	})
}

// Analysis returns the expense breakdown by category, the savings rate
// and the spending insights over the user's whole history.
func (h *ReportHandler) Analysis(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	txs, err := h.TxRepo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	income, expense := metrics.Totals(txs)
	categories := metrics.ExpenseByCategory(txs)

	type categoryShare struct {
		metrics.CategorySum
		Percentage float64 `json:"percentage"`
	}
	shares := make([]categoryShare, 0, len(categories))
	for _, cat := range categories {
		// one decimal, same precision the insight messages use
		share := 0.0
		if expense > 0 {
			share = math.Round(cat.Total/expense*1000) / 10
		}
		shares = append(shares, categoryShare{CategorySum: cat, Percentage: share})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_income":  income,
		"total_expense": expense,
		"balance":       income - expense,
		"savings_rate":  metrics.SavingsRate(income, expense),
		"by_category":   shares,
		"insights":      metrics.Insights(txs),
	})
}
