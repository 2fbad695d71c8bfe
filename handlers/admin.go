package handlers

import (
	"fmt"
	"net/http"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
)

// AdminListProviders returns all service providers with their users — admin only
func AdminListProviders(c *gin.Context) {
	var providers []models.ServiceProvider
	query := config.DB.Preload("User").Preload("ApprovedBy")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&providers)
	c.JSON(http.StatusOK, gin.H{"count": len(providers), "providers": providers})
}

// AdminListPendingProviders returns providers awaiting approval — admin only
func AdminListPendingProviders(c *gin.Context) {
	var providers []models.ServiceProvider
	config.DB.Preload("User").
		Where("status = ?", models.ProviderPending).
		Find(&providers)
	c.JSON(http.StatusOK, gin.H{"count": len(providers), "providers": providers})
}

func setProviderStatus(c *gin.Context, status models.ProviderStatus, verb string) {
	adminID := middleware.GetUserID(c)

	var provider models.ServiceProvider
	if err := config.DB.Where("user_id = ?", c.Param("id")).First(&provider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service provider not found"})
		return
	}

	if err := config.DB.Model(&provider).Updates(map[string]interface{}{
		"status":         status,
		"approved_by_id": adminID,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider status"})
		return
	}

	Notify(provider.UserID, fmt.Sprintf("Your service provider account has been %s by %s.", verb, middleware.GetName(c)))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Service provider " + verb + " successfully",
		"provider_id": provider.UserID,
		"status":      status,
	})
}

// AdminApproveProvider marks a provider Approved and records the acting admin
func AdminApproveProvider(c *gin.Context) {
	setProviderStatus(c, models.ProviderApproved, "approved")
}

// AdminRejectProvider marks a provider Rejected and records the acting admin
func AdminRejectProvider(c *gin.Context) {
	setProviderStatus(c, models.ProviderRejected, "rejected")
}

// AdminGetAllBookings returns every booking with a status summary and the
// paid revenue aggregate — admin only
func AdminGetAllBookings(c *gin.Context) {
	var bookings []models.Booking
	query := config.DB.Preload("Service").Preload("Customer").Preload("Provider")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if providerID := c.Query("provider_id"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}
	query.Order("created_at desc").Find(&bookings)

	summary := map[string]int{}
	for _, b := range bookings {
		summary[string(b.Status)]++
	}

	var revenue float64
	config.DB.Model(&models.Payment{}).
		Where("status = ?", "Success").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	c.JSON(http.StatusOK, gin.H{
		"booking_summary": summary,
		"total_revenue":   revenue,
		"count":           len(bookings),
		"bookings":        bookings,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetReport returns platform-wide aggregates for the admin dashboard
func AdminGetReport(c *gin.Context) {
	usersByRole := map[string]int64{}
	for _, role := range []models.UserRole{models.RoleCustomer, models.RoleProvider, models.RoleAdmin} {
		var n int64
		config.DB.Model(&models.User{}).Where("role = ?", role).Count(&n)
		usersByRole[string(role)] = n
	}

	providersByStatus := map[string]int64{}
	for _, status := range []models.ProviderStatus{models.ProviderPending, models.ProviderApproved, models.ProviderRejected} {
		var n int64
		config.DB.Model(&models.ServiceProvider{}).Where("status = ?", status).Count(&n)
		providersByStatus[string(status)] = n
	}

	bookingsByStatus := map[string]int64{}
	for _, status := range []models.BookingStatus{models.StatusPending, models.StatusConfirmed, models.StatusCancelled} {
		var n int64
		config.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
		bookingsByStatus[string(status)] = n
	}

	var paymentCount int64
	config.DB.Model(&models.Payment{}).Count(&paymentCount)
	var paymentVolume float64
	config.DB.Model(&models.Payment{}).
		Where("status = ?", "Success").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paymentVolume)

	c.JSON(http.StatusOK, gin.H{
		"users_by_role":       usersByRole,
		"providers_by_status": providersByStatus,
		"bookings_by_status":  bookingsByStatus,
		"payment_count":       paymentCount,
		"payment_volume":      paymentVolume,
	})
}
