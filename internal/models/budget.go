package models

import "time"

// Budget is a spending cap for one category over a monthly or yearly
// window anchored at StartDate. Spending against it is never stored,
// it is derived from transactions at read time.
type Budget struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Period    string    `gorm:"size:20;not null;check:period IN ('monthly','yearly')" json:"period"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
