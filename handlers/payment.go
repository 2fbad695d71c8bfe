package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"
	"service-booking-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessPaymentRequest struct {
	Method string   `json:"payment_method" binding:"required"`
	Amount *float64 `json:"amount" binding:"omitempty,gt=0"` // defaults to the service's list price
}

// ProcessPayment records a payment against a pending booking and confirms it.
// The payment row and the booking state flip commit together; the invoice is
// written afterwards and its failure never rolls back the payment.
func ProcessPayment(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Service").First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if booking.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}

	var existing models.Payment
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment already processed for this booking"})
		return
	}

	if err := statemachine.CanTransition(booking.Status, models.StatusConfirmed, "system"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Booking cannot be paid in its current state",
			"reason":        err.Error(),
			"current_state": booking.Status,
		})
		return
	}

	amount := booking.Service.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	payment := models.Payment{
		BookingID:  booking.ID,
		CustomerID: customerID,
		ProviderID: booking.ProviderID,
		Amount:     amount,
		Method:     models.NormalizeMethod(req.Method),
		Status:     "Success",
		PaidAt:     time.Now(),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// The unique index on payments.booking_id rejects a duplicate here
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Updates(map[string]interface{}{
			"status":         models.StatusConfirmed,
			"payment_status": statemachine.PairedPaymentState(models.StatusConfirmed, booking.PaymentStatus),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment already processed for this booking"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		return
	}

	// Invoice completeness is traded for payment durability
	invoice := models.Invoice{
		Number:    uuid.NewString(),
		BookingID: booking.ID,
		UserID:    customerID,
		Amount:    amount,
		IssuedAt:  time.Now(),
	}
	if err := config.DB.Create(&invoice).Error; err != nil {
		log.Printf("Failed to create invoice for booking %d: %v", booking.ID, err)
	}

	Notify(customerID, fmt.Sprintf("Payment of $%.2f received for booking #%d. Your booking is confirmed.", amount, booking.ID))
	Notify(booking.ProviderID, fmt.Sprintf("Booking #%d has been paid and confirmed.", booking.ID))

	c.JSON(http.StatusOK, gin.H{
		"message":    "Payment processed successfully",
		"payment_id": payment.ID,
		"booking_id": booking.ID,
		"amount":     amount,
		"method":     payment.Method,
	})
}

// GetMyPayments returns the caller's payment history with service names
func GetMyPayments(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var payments []models.Payment
	config.DB.Preload("Booking.Service").
		Where("customer_id = ?", customerID).
		Order("paid_at desc").
		Find(&payments)
	c.JSON(http.StatusOK, gin.H{"count": len(payments), "payments": payments})
}

// GetInvoice returns a single invoice, visible only to the booking's
// customer, its provider, or an admin
func GetInvoice(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var invoice models.Invoice
	if err := config.DB.First(&invoice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, invoice.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found for invoice"})
		return
	}
	if !canActOnBooking(&booking, actorID, role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to view this invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "booking": booking})
}

// GetMyInvoices returns the caller's invoices, newest first
func GetMyInvoices(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var invoices []models.Invoice
	config.DB.Where("user_id = ?", userID).
		Order("issued_at desc").
		Find(&invoices)
	c.JSON(http.StatusOK, gin.H{"count": len(invoices), "invoices": invoices})
}

// GetProviderEarnings computes the provider dashboard numbers per request:
// lifetime successful payments, current calendar month, and the pending
// amount over unpaid Pending bookings.
func GetProviderEarnings(c *gin.Context) {
	providerID := middleware.GetUserID(c)

	var total float64
	config.DB.Model(&models.Payment{}).
		Where("provider_id = ? AND status = ?", providerID, "Success").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var month float64
	config.DB.Model(&models.Payment{}).
		Where("provider_id = ? AND status = ? AND paid_at >= ?", providerID, "Success", monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&month)

	var pending float64
	config.DB.Model(&models.Booking{}).
		Joins("JOIN services ON bookings.service_id = services.id").
		Where("bookings.provider_id = ? AND bookings.status = ? AND bookings.payment_status = ?",
			providerID, models.StatusPending, models.PaymentNotPaid).
		Select("COALESCE(SUM(services.price), 0)").
		Scan(&pending)

	var recent []models.Payment
	config.DB.Preload("Booking.Service").
		Where("provider_id = ?", providerID).
		Order("paid_at desc").
		Limit(10).
		Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"total_earnings":  total,
		"month_earnings":  month,
		"pending_amount":  pending,
		"recent_payments": recent,
	})
}
