package models

import "time"

// ProviderStatus tracks the admin approval workflow for service providers
type ProviderStatus string

const (
	ProviderPending  ProviderStatus = "Pending"
	ProviderApproved ProviderStatus = "Approved"
	ProviderRejected ProviderStatus = "Rejected"
)

// ServiceProvider extends a provider-role User with marketplace state.
// New providers start Pending and stay invisible to customers until approved.
type ServiceProvider struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialization string         `json:"specialization"`
	Status         ProviderStatus `json:"status" gorm:"not null;default:'Pending'"`
	ApprovedByID   *uint          `json:"approved_by_id"`
	ApprovedBy     *User          `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Service struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ProviderID      *uint     `json:"provider_id"`
	Provider        *User     `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	Price           float64   `json:"price" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"default:60"`
	IsApproved      bool      `json:"is_approved" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
