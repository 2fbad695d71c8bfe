package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"
	"service-booking-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
}

// pickProvider resolves the provider a booking is assigned to: the service's
// own provider when approved, otherwise the first Approved provider on the
// platform.
func pickProvider(service *models.Service) (uint, error) {
	if service.ProviderID != nil {
		var sp models.ServiceProvider
		err := config.DB.Where("user_id = ? AND status = ?", *service.ProviderID, models.ProviderApproved).
			First(&sp).Error
		if err == nil {
			return *service.ProviderID, nil
		}
	}
	var sp models.ServiceProvider
	if err := config.DB.Where("status = ?", models.ProviderApproved).
		Order("id asc").First(&sp).Error; err != nil {
		return 0, err
	}
	return sp.UserID, nil
}

// CreateBooking creates a new booking (customer only). The booking starts
// Pending / Not Paid and both parties are notified.
func CreateBooking(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var service models.Service
	if err := config.DB.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	providerID, err := pickProvider(&service)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No service providers available"})
		return
	}

	booking := models.Booking{
		CustomerID:    customerID,
		ProviderID:    providerID,
		ServiceID:     service.ID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentNotPaid,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	Notify(customerID, "Your booking has been created. Please complete payment to confirm.")
	Notify(providerID, fmt.Sprintf("New booking from %s is pending payment.", middleware.GetName(c)))

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking created successfully. Please complete payment to confirm.",
		"booking_id": booking.ID,
		"status":     booking.Status,
	})
}

// GetMyBookings returns all bookings for the logged-in customer
func GetMyBookings(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var bookings []models.Booking
	config.DB.Preload("Service").Preload("Provider").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings)
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// GetProviderBookings returns bookings assigned to the logged-in provider
func GetProviderBookings(c *gin.Context) {
	providerID := middleware.GetUserID(c)
	var bookings []models.Booking

	query := config.DB.Preload("Service").Preload("Customer").
		Where("provider_id = ?", providerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&bookings)

	summary := map[string]int{}
	for _, b := range bookings {
		summary[string(b.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_summary": summary,
		"count":           len(bookings),
		"bookings":        bookings,
	})
}

// canActOnBooking is the single ownership predicate for booking operations:
// the owning customer, the assigned provider, or an admin.
func canActOnBooking(booking *models.Booking, actorID uint, role models.UserRole) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleProvider:
		return booking.ProviderID == actorID
	default:
		return booking.CustomerID == actorID
	}
}

// GetBooking returns a single booking with its payment and cancellation
// records, visible to the customer, the provider, or an admin
func GetBooking(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var booking models.Booking
	if err := config.DB.Preload("Service").Preload("Customer").Preload("Provider").
		First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if !canActOnBooking(&booking, actorID, role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}

	resp := gin.H{"booking": booking}

	var payment models.Payment
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err == nil {
		resp["payment"] = payment
	}
	var cancellation models.Cancellation
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&cancellation).Error; err == nil {
		resp["cancellation"] = cancellation
	}

	c.JSON(http.StatusOK, resp)
}

// CancelBooking cancels a booking. Status, payment flag and the cancellation
// record are written in one transaction; the unique index on
// cancellations.booking_id makes a second cancel fail instead of racing.
func CancelBooking(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var booking models.Booking
	if err := config.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if !canActOnBooking(&booking, actorID, role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}

	if booking.Status == models.StatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking has already been cancelled"})
		return
	}

	if err := statemachine.CanTransition(booking.Status, models.StatusCancelled, string(role)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel booking",
			"reason":        err.Error(),
			"current_state": booking.Status,
		})
		return
	}

	// Refund equals the payment amount when one exists, zero otherwise
	var refund float64
	var payment models.Payment
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err == nil {
		refund = payment.Amount
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		cancellation := models.Cancellation{
			BookingID:     booking.ID,
			CancelledByID: actorID,
			RefundAmount:  refund,
			CancelledAt:   time.Now(),
		}
		if err := tx.Create(&cancellation).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Updates(map[string]interface{}{
			"status":         models.StatusCancelled,
			"payment_status": statemachine.PairedPaymentState(models.StatusCancelled, booking.PaymentStatus),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Booking has already been cancelled"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	Notify(booking.CustomerID, fmt.Sprintf("Booking #%d has been cancelled. Refund amount: $%.2f", booking.ID, refund))
	if role == models.RoleCustomer {
		Notify(booking.ProviderID, fmt.Sprintf("Booking #%d has been cancelled by customer. Refund amount: $%.2f", booking.ID, refund))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Booking cancelled successfully",
		"booking_id":    booking.ID,
		"refund_amount": refund,
	})
}

// GetBookingStatus returns just the state pair for polling clients
func GetBookingStatus(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var booking models.Booking
	if err := config.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if !canActOnBooking(&booking, actorID, role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_id":     booking.ID,
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
	})
}
