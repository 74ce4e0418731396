package models

import "time"

// AuditLog records mutating requests for the owning user.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"size:64;index" json:"request_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Method    string    `gorm:"size:16" json:"method"`
	Path      string    `gorm:"size:255" json:"path"`
	Status    int       `json:"status"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
