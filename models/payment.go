package models

import "time"

// PaymentMethod is the small enumerated set payments are stored with
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodDebitCard  PaymentMethod = "Debit Card"
	MethodPaypal     PaymentMethod = "Paypal"
	MethodNetBanking PaymentMethod = "Net Banking"
)

// methodAliases is the canonical mapping from client-supplied method names.
// Unrecognized methods fall back to Credit Card instead of failing.
var methodAliases = map[string]PaymentMethod{
	"credit_card":   MethodCreditCard,
	"debit_card":    MethodDebitCard,
	"paypal":        MethodPaypal,
	"bank_transfer": MethodNetBanking,
}

// NormalizeMethod maps a client payment-method name to its stored enum value
func NormalizeMethod(raw string) PaymentMethod {
	if m, ok := methodAliases[raw]; ok {
		return m
	}
	return MethodCreditCard
}

// Payment is one-to-one with a paid booking; the unique index on BookingID is
// the duplicate-payment guard.
type Payment struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	BookingID  uint          `json:"booking_id" gorm:"uniqueIndex;not null"`
	Booking    Booking       `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	CustomerID uint          `json:"customer_id" gorm:"not null"`
	ProviderID uint          `json:"provider_id"` // denormalized for earnings queries
	Amount     float64       `json:"amount" gorm:"not null"`
	Method     PaymentMethod `json:"method" gorm:"not null"`
	Status     string        `json:"status" gorm:"not null;default:'Success'"`
	PaidAt     time.Time     `json:"paid_at"`
}

// Invoice is generated after a successful payment. Generation is best-effort:
// a booking can be Confirmed/Paid with no invoice if the insert failed.
type Invoice struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Number    string    `json:"number" gorm:"uniqueIndex;not null"`
	BookingID uint      `json:"booking_id" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	IssuedAt  time.Time `json:"issued_at"`
}
