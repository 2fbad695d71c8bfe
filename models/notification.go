package models

import "time"

// Notification is an append-only per-user message. Only IsRead is ever updated.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null"`
	Customer   User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID uint      `json:"provider_id" gorm:"not null"`
	Provider   User      `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
