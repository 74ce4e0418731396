package models

import "time"

// Debt is an owed amount with optional simple interest on the
// outstanding balance.
type Debt struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Type         string     `gorm:"size:50;not null;check:type IN ('personal','credit_card','loan','other')" json:"type"`
	TotalAmount  float64    `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount   float64    `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	DueDate      *time.Time `gorm:"type:date" json:"due_date"`
	InterestRate float64    `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`
	Reminder     bool       `gorm:"default:true" json:"reminder"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
