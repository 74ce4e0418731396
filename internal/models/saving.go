package models

import "time"

// Saving is a savings goal. CurrentAmount grows through deposits.
// AutoSave only records the intended recurring deposit, nothing here
// schedules it.
type Saving struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	TargetAmount   float64    `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount  float64    `gorm:"type:decimal(15,2);default:0" json:"current_amount"`
	TargetDate     *time.Time `gorm:"type:date" json:"target_date"`
	AutoSave       bool       `gorm:"default:false" json:"auto_save"`
	AutoSaveAmount float64    `gorm:"type:decimal(15,2);default:0" json:"auto_save_amount"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
