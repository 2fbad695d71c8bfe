package models

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// PaymentState is the parallel paid/unpaid flag on a booking. It is always
// written together with Status by state-changing operations.
type PaymentState string

const (
	PaymentNotPaid PaymentState = "Not Paid"
	PaymentPaid    PaymentState = "Paid"
)

type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CustomerID    uint          `json:"customer_id" gorm:"not null"`
	Customer      User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID    uint          `json:"provider_id" gorm:"not null"`
	Provider      User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID     uint          `json:"service_id" gorm:"not null"`
	Service       Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Date          string        `json:"date" gorm:"not null"` // YYYY-MM-DD
	Time          string        `json:"time" gorm:"not null"` // HH:MM
	Status        BookingStatus `json:"status" gorm:"not null;default:'Pending'"`
	PaymentStatus PaymentState  `json:"payment_status" gorm:"not null;default:'Not Paid'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Cancellation records the terminal cancel of a booking. The unique index on
// BookingID guarantees at most one cancellation per booking at the database
// level rather than by a check-then-insert read.
type Cancellation struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	BookingID     uint      `json:"booking_id" gorm:"uniqueIndex;not null"`
	CancelledByID uint      `json:"cancelled_by_id"`
	RefundAmount  float64   `json:"refund_amount"`
	CancelledAt   time.Time `json:"cancelled_at"`
}
