package routes

import (
	"service-booking-api/handlers"
	"service-booking-api/middleware"
	"service-booking-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog — response shape depends on the (optional) caller identity
		public.GET("/services", middleware.OptionalAuth(), handlers.ListServices)
		public.GET("/services/:id", middleware.OptionalAuth(), handlers.GetService)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)
		auth.PUT("/profile/password", handlers.ChangePassword)

		// Booking reads and cancellation are role-checked per booking
		auth.GET("/bookings/:id", handlers.GetBooking)
		auth.GET("/bookings/:id/status", handlers.GetBookingStatus)
		auth.DELETE("/bookings/:id", handlers.CancelBooking)

		// Invoices are visible to the booking's customer, provider, or admin
		auth.GET("/invoices/:id", handlers.GetInvoice)

		// Notification feed
		auth.GET("/notifications", handlers.ListNotifications)
		auth.GET("/notifications/count", handlers.UnreadNotificationCount)
		auth.POST("/notifications/mark-read", handlers.MarkNotificationsRead)

		// Reviews: written by customers, received by providers
		auth.GET("/user/reviews", handlers.GetMyReviews)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/bookings", handlers.CreateBooking)
		customer.GET("/bookings", handlers.GetMyBookings)
		customer.POST("/payments/:id", handlers.ProcessPayment)
		customer.GET("/payments", handlers.GetMyPayments)
		customer.GET("/invoices", handlers.GetMyInvoices)
		customer.POST("/reviews", handlers.AddReview)
	}

	// ── Provider routes ────────────────────────────────────────────
	provider := r.Group("/api/provider")
	provider.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleProvider))
	{
		provider.POST("/services", handlers.CreateService)
		provider.PUT("/services/:id", handlers.UpdateService)
		provider.DELETE("/services/:id", handlers.DeleteService)

		provider.GET("/bookings", handlers.GetProviderBookings)
		provider.GET("/earnings", handlers.GetProviderEarnings)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/providers", handlers.AdminListProviders)
		admin.GET("/providers/pending", handlers.AdminListPendingProviders)
		admin.POST("/providers/:id/approve", handlers.AdminApproveProvider)
		admin.POST("/providers/:id/reject", handlers.AdminRejectProvider)

		admin.GET("/bookings", handlers.AdminGetAllBookings)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/report", handlers.AdminGetReport)
	}
}
