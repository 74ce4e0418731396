package util

import (
	"testing"
	"time"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []float64{0.01, 1.0, 100.5, 9_999_999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Zero(t *testing.T) {
	if err := ValidateAmount(0); err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

func TestValidateAmount_Negative(t *testing.T) {
	testCases := []float64{-0.01, -1.0, -100_000}

	for _, amount := range testCases {
		if err := ValidateAmount(amount); err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDate error = %v, want nil", err)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{"", "15-01-2024", "2024/01/15", "2024-13-01", "not a date"}

	for _, s := range testCases {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", s)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b@c.co.id"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", e, err)
		}
	}

	invalid := []string{"", "user", "user@", "@example.com", "a b@c.com"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", e)
		}
	}
}

func TestValidateEnum(t *testing.T) {
	if err := ValidateEnum("income", "income", "expense"); err != nil {
		t.Errorf("ValidateEnum(income) error = %v, want nil", err)
	}
	if err := ValidateEnum("transfer", "income", "expense"); err == nil {
		t.Error("ValidateEnum(transfer) error = nil, want error")
	}
}
