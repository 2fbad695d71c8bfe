package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"service-booking-api/config"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingWithoutProviders(t *testing.T) {
	r := setupRouter(t)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)

	// Provider exists but was never approved; its service is not bookable
	_, providerID := registerUser(t, r, models.RoleProvider)
	service := models.Service{ProviderID: &providerID, Name: "Haircut", Price: 25, IsApproved: true}
	require.NoError(t, config.DB.Create(&service).Error)

	w, resp := doJSON(t, r, http.MethodPost, "/api/customer/bookings", customerToken, gin.H{
		"service_id": service.ID,
		"date":       "2025-01-10",
		"time":       "14:00",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No service providers available", resp["error"])

	var count int64
	config.DB.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count, "no booking row may be written")
}

func TestCreateBookingStartsPendingNotPaid(t *testing.T) {
	r := setupRouter(t)
	_, providerID, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, customerID := registerUser(t, r, models.RoleCustomer)

	bookingID := createBooking(t, r, customerToken, serviceID)

	var booking models.Booking
	require.NoError(t, config.DB.First(&booking, bookingID).Error)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, models.PaymentNotPaid, booking.PaymentStatus)
	assert.Equal(t, customerID, booking.CustomerID)
	assert.Equal(t, providerID, booking.ProviderID)

	// Both parties got a notification
	var n int64
	config.DB.Model(&models.Notification{}).Where("user_id = ?", customerID).Count(&n)
	assert.EqualValues(t, 1, n)
	config.DB.Model(&models.Notification{}).Where("user_id = ?", providerID).Count(&n)
	assert.EqualValues(t, 2, n) // approval notice + new booking
}

func TestCancelUnpaidBookingRefundsZero(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	w, resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, resp["refund_amount"])

	var booking models.Booking
	require.NoError(t, config.DB.First(&booking, bookingID).Error)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Equal(t, models.PaymentNotPaid, booking.PaymentStatus)

	var cancellation models.Cancellation
	require.NoError(t, config.DB.Where("booking_id = ?", bookingID).First(&cancellation).Error)
	assert.EqualValues(t, 0, cancellation.RefundAmount)
}

func TestCancelPaidBookingRefundsPaymentAmount(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 80)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/payments/%d", bookingID), customerToken, gin.H{
		"payment_method": "credit_card",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 80, resp["refund_amount"])

	var cancellation models.Cancellation
	require.NoError(t, config.DB.Where("booking_id = ?", bookingID).First(&cancellation).Error)
	assert.EqualValues(t, 80, cancellation.RefundAmount)
}

func TestCancelTwiceConflicts(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.Cancellation{}).Where("booking_id = ?", bookingID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCancelDuplicateIndexMapsToConflict(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, customerID := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	// A cancellation row already on disk makes the transaction hit the
	// unique index rather than the status pre-check
	existing := models.Cancellation{BookingID: bookingID, CancelledByID: customerID}
	require.NoError(t, config.DB.Create(&existing).Error)

	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.Cancellation{}).Where("booking_id = ?", bookingID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBookingOwnershipEnforced(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	ownerToken, _ := registerUser(t, r, models.RoleCustomer)
	otherToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, ownerToken, serviceID)

	path := fmt.Sprintf("/api/bookings/%d", bookingID)

	// Another customer cannot view or cancel
	w, _ := doJSON(t, r, http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Another customer cannot pay either
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/payments/%d", bookingID), otherToken, gin.H{
		"payment_method": "credit_card",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssignedProviderCanCancel(t *testing.T) {
	r := setupRouter(t)
	providerToken, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), providerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnassignedProviderCannotCancel(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	otherProviderToken, _, _ := setupApprovedProvider(t, r, 30)
	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), otherProviderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCanCancelAnyBooking(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	adminToken := loginAdmin(t, r)
	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBookingStatus(t *testing.T) {
	r := setupRouter(t)
	_, _, serviceID := setupApprovedProvider(t, r, 50)
	customerToken, _ := registerUser(t, r, models.RoleCustomer)
	bookingID := createBooking(t, r, customerToken, serviceID)

	w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/bookings/%d/status", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pending", resp["status"])
	assert.Equal(t, "Not Paid", resp["payment_status"])
}
