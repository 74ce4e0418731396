package models

import "time"

// Transaction is a single income or expense record.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Type        string    `gorm:"size:20;not null;check:type IN ('income','expense')" json:"type"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
