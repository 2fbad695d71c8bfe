package handlers

import (
	"net/http"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
)

// serviceView is the catalog row shape; admin and provider listings carry
// extra annotation columns.
type serviceView struct {
	models.Service
	ProviderName   string                `json:"provider_name"`
	ProviderStatus models.ProviderStatus `json:"provider_status,omitempty"`
	BookingCount   int64                 `json:"booking_count,omitempty"`
}

// ListServices returns the catalog. The result depends on who is asking:
// customers and anonymous callers see only approved services from Approved
// providers, providers see their own, admins see everything annotated with
// provider status.
func ListServices(c *gin.Context) {
	role := middleware.GetRole(c)

	switch role {
	case models.RoleAdmin:
		var views []serviceView
		config.DB.Model(&models.Service{}).
			Select("services.*, users.name as provider_name, service_providers.status as provider_status").
			Joins("LEFT JOIN users ON services.provider_id = users.id").
			Joins("LEFT JOIN service_providers ON services.provider_id = service_providers.user_id").
			Scan(&views)
		c.JSON(http.StatusOK, gin.H{"count": len(views), "services": views})

	case models.RoleProvider:
		providerID := middleware.GetUserID(c)
		var views []serviceView
		config.DB.Model(&models.Service{}).
			Select("services.*, users.name as provider_name, (SELECT COUNT(*) FROM bookings WHERE bookings.service_id = services.id) as booking_count").
			Joins("JOIN users ON services.provider_id = users.id").
			Where("services.provider_id = ?", providerID).
			Scan(&views)
		c.JSON(http.StatusOK, gin.H{"count": len(views), "services": views})

	default:
		// Customers and anonymous callers
		var views []serviceView
		config.DB.Model(&models.Service{}).
			Select("services.*, users.name as provider_name").
			Joins("JOIN users ON services.provider_id = users.id").
			Joins("JOIN service_providers ON services.provider_id = service_providers.user_id").
			Where("service_providers.status = ? AND services.is_approved = ?", models.ProviderApproved, true).
			Scan(&views)
		c.JSON(http.StatusOK, gin.H{"count": len(views), "services": views})
	}
}

// GetService returns a single service under the same visibility rules as the
// listing: admins see any, a provider sees their own, everyone else only gets
// approved services from Approved providers. Hidden services read as 404.
func GetService(c *gin.Context) {
	role := middleware.GetRole(c)

	var view serviceView
	query := config.DB.Model(&models.Service{}).
		Select("services.*, users.name as provider_name").
		Joins("LEFT JOIN users ON services.provider_id = users.id").
		Where("services.id = ?", c.Param("id"))

	switch role {
	case models.RoleAdmin:
		// no visibility filter
	case models.RoleProvider:
		query = query.Where("services.provider_id = ?", middleware.GetUserID(c))
	default:
		query = query.
			Joins("JOIN service_providers ON services.provider_id = service_providers.user_id").
			Where("service_providers.status = ? AND services.is_approved = ?", models.ProviderApproved, true)
	}

	if err := query.First(&view).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": view})
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes"`
}

// CreateService adds a service owned by the calling provider
func CreateService(c *gin.Context) {
	providerID := middleware.GetUserID(c)
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}

	service := models.Service{
		ProviderID:      &providerID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: duration,
		IsApproved:      true,
	}
	if err := config.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service created", "service": service})
}

// UpdateService updates a service (only by its owning provider)
func UpdateService(c *gin.Context) {
	providerID := middleware.GetUserID(c)

	var service models.Service
	if err := config.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if service.ProviderID == nil || *service.ProviderID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this service"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "description": true, "price": true, "duration_minutes": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&service).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Service updated", "service": service})
}

// DeleteService removes a service, refused while any booking references it.
// The guard lives here because the schema carries no FK constraint for it.
func DeleteService(c *gin.Context) {
	providerID := middleware.GetUserID(c)

	var service models.Service
	if err := config.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if service.ProviderID == nil || *service.ProviderID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this service"})
		return
	}

	var bookingCount int64
	config.DB.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&bookingCount)
	if bookingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Service has existing bookings and cannot be deleted"})
		return
	}

	config.DB.Delete(&service)
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
