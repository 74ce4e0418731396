package models

import "time"

// Installment is a fixed-count payment plan. Per-installment amount is
// TotalAmount / Installments, derived at read time.
type Installment struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"index;not null" json:"user_id"`
	Name               string     `gorm:"size:255;not null" json:"name"`
	TotalAmount        float64    `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount         float64    `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	Installments       int        `gorm:"not null" json:"installments"`
	CurrentInstallment int        `gorm:"default:0" json:"current_installment"`
	DueDate            *time.Time `gorm:"type:date" json:"due_date"`
	Reminder           bool       `gorm:"default:true" json:"reminder"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
