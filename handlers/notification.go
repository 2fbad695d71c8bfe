package handlers

import (
	"log"
	"net/http"

	"service-booking-api/config"
	"service-booking-api/middleware"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
)

// Notify appends a message to a user's feed. It is a fire-and-forget side
// effect: a failed insert is logged and never fails the triggering operation.
func Notify(userID uint, message string) {
	n := models.Notification{UserID: userID, Message: message}
	if err := config.DB.Create(&n).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
	}
}

// ListNotifications returns the caller's notifications, newest first
func ListNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var notifications []models.Notification
	config.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications)
	c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
}

// UnreadNotificationCount returns how many unread notifications the caller has
func UnreadNotificationCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var count int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationsRead flags all of the caller's notifications as read
func MarkNotificationsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
}
