package metrics

import (
	"strings"
	"testing"

	"github.com/Jepersonsam/my-finance-app/internal/models"
)

func TestSavingsRate(t *testing.T) {
	cases := []struct {
		name    string
		income  float64
		expense float64
		want    float64
	}{
		{"no income", 0, 500_000, 0},
		{"deficit", 1_000_000, 1_500_000, -50},
		{"healthy", 5_000_000, 3_000_000, 40},
		{"break even", 2_000_000, 2_000_000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SavingsRate(tc.income, tc.expense); got != tc.want {
				t.Errorf("SavingsRate(%v, %v) = %v, want %v", tc.income, tc.expense, got, tc.want)
			}
		})
	}
}

func TestExpenseByCategory(t *testing.T) {
	txs := []models.Transaction{
		{Type: "expense", Category: "Makanan", Amount: 300_000},
		{Type: "expense", Category: "Transportasi", Amount: 500_000},
		{Type: "expense", Category: "Makanan", Amount: 400_000},
		{Type: "income", Category: "Gaji", Amount: 5_000_000}, // ignored
	}

	got := ExpenseByCategory(txs)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Category != "Makanan" || got[0].Total != 700_000 {
		t.Errorf("top category = %+v, want Makanan 700000", got[0])
	}
	if got[1].Category != "Transportasi" || got[1].Total != 500_000 {
		t.Errorf("second category = %+v, want Transportasi 500000", got[1])
	}
}

func TestInsights(t *testing.T) {
	t.Run("deficit warning", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: "income", Category: "Gaji", Amount: 1_000_000},
			{Type: "expense", Category: "Makanan", Amount: 800_000},
			{Type: "expense", Category: "Transportasi", Amount: 700_000},
		}
		insights := Insights(txs)
		if len(insights) == 0 || insights[0].Type != "warning" {
			t.Fatalf("insights = %+v, want leading deficit warning", insights)
		}
	})

	t.Run("low rate info", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: "income", Category: "Gaji", Amount: 1_000_000},
			{Type: "expense", Category: "Makanan", Amount: 450_000},
			{Type: "expense", Category: "Transportasi", Amount: 450_000},
		}
		insights := Insights(txs)
		if insights[0].Type != "info" {
			t.Errorf("first insight type = %q, want info", insights[0].Type)
		}
	})

	t.Run("good rate success", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: "income", Category: "Gaji", Amount: 1_000_000},
			{Type: "expense", Category: "Makanan", Amount: 300_000},
			{Type: "expense", Category: "Transportasi", Amount: 300_000},
		}
		insights := Insights(txs)
		if insights[0].Type != "success" {
			t.Errorf("first insight type = %q, want success", insights[0].Type)
		}
	})

	t.Run("concentration warning names category and share", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: "income", Category: "Gaji", Amount: 10_000_000},
			{Type: "expense", Category: "Makanan", Amount: 450_000},
			{Type: "expense", Category: "Transportasi", Amount: 550_000},
		}
		insights := Insights(txs)
		if len(insights) != 2 {
			t.Fatalf("insights = %+v, want rate entry plus concentration warning", insights)
		}
		last := insights[len(insights)-1]
		if last.Type != "warning" {
			t.Errorf("concentration type = %q, want warning", last.Type)
		}
		if !strings.Contains(last.Message, "Transportasi") || !strings.Contains(last.Message, "55.0%") {
			t.Errorf("concentration message = %q, want category name and one-decimal share", last.Message)
		}
	})

	t.Run("no concentration warning at 40 or below", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: "income", Category: "Gaji", Amount: 10_000_000},
			{Type: "expense", Category: "Makanan", Amount: 400_000},
			{Type: "expense", Category: "Transportasi", Amount: 300_000},
			{Type: "expense", Category: "Hiburan", Amount: 300_000},
		}
		insights := Insights(txs)
		if len(insights) != 1 {
			t.Fatalf("insights = %+v, want single rate entry", insights)
		}
	})
}
