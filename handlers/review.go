package handlers

import (
	"net/http"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
)

type AddReviewRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// AddReview records a customer rating for a provider
func AddReview(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var provider models.ServiceProvider
	if err := config.DB.Where("user_id = ?", req.ProviderID).First(&provider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service provider not found"})
		return
	}

	review := models.Review{
		CustomerID: customerID,
		ProviderID: req.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added", "review": review})
}

// GetMyReviews returns reviews written by a customer, or received by a provider
func GetMyReviews(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var reviews []models.Review
	if role == models.RoleProvider {
		config.DB.Preload("Customer").
			Where("provider_id = ?", userID).
			Order("created_at desc").
			Find(&reviews)
	} else {
		config.DB.Preload("Provider").
			Where("customer_id = ?", userID).
			Order("created_at desc").
			Find(&reviews)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}
