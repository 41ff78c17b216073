package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trailhead-api/config"
	"trailhead-api/controllers"
	"trailhead-api/middleware"
	"trailhead-api/realtime"
	"trailhead-api/repositories"
	"trailhead-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *realtime.Hub, emailService *services.EmailService) {
	// Services
	calendarService := services.NewCalendarService()
	importService := services.NewImportService()
	achievementService := services.NewAchievementService(db)
	feedService := services.NewFeedService(repositories.NewFeedRepository(db))
	weatherService := services.NewWeatherService(cfg.WeatherAPIURL)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	activityController := controllers.NewActivityController(db, hub, calendarService, importService, achievementService)
	spotController := controllers.NewSpotController(db, hub)
	wishlistController := controllers.NewWishlistController(db, hub)
	tripController := controllers.NewTripController(db, hub)
	notificationController := controllers.NewNotificationController(db, hub)
	friendController := controllers.NewFriendController(db, notificationController)
	feedController := controllers.NewFeedController(db, hub, feedService, notificationController)
	settingsController := controllers.NewSettingsController(db)
	weatherController := controllers.NewWeatherController(weatherService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerificationCode)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/reset-password", authController.ResetPassword)

		auth.GET("/debug/verification-code", authController.GetVerificationCode)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Realtime change notifications
		protected.GET("/ws", realtime.ServeWS(hub))

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/statistics", userController.GetStatistics)
			users.GET("/search", userController.SearchUsers)
			users.GET("/:user_id", userController.GetUser)
		}

		// Activity routes
		activities := protected.Group("/activities")
		{
			activities.GET("/", activityController.GetActivities)
			activities.POST("/", activityController.CreateActivity)
			activities.POST("/start", activityController.StartActivity)
			activities.POST("/import", activityController.ImportActivity)
			activities.GET("/calendar", activityController.GetCalendar)
			activities.GET("/:id", activityController.GetActivity)
			activities.PUT("/:id", activityController.UpdateActivity)
			activities.DELETE("/:id", activityController.DeleteActivity)
			activities.POST("/:id/track", activityController.AddTrackPoint)
			activities.POST("/:id/stop", activityController.StopActivity)
			activities.GET("/:id/export", activityController.ExportActivity)
		}

		// Saved location routes
		locations := protected.Group("/locations")
		{
			locations.GET("/", spotController.GetSpots)
			locations.POST("/", spotController.CreateSpot)
			locations.GET("/:id", spotController.GetSpot)
			locations.PUT("/:id", spotController.UpdateSpot)
			locations.DELETE("/:id", spotController.DeleteSpot)
		}

		// Wishlist routes
		wishlist := protected.Group("/wishlist")
		{
			wishlist.GET("/", wishlistController.GetWishlist)
			wishlist.POST("/", wishlistController.CreateWishlistItem)
			wishlist.PUT("/:id", wishlistController.UpdateWishlistItem)
			wishlist.DELETE("/:id", wishlistController.DeleteWishlistItem)
		}

		// Trip routes
		trips := protected.Group("/trips")
		{
			trips.GET("/", tripController.GetTrips)
			trips.POST("/", tripController.CreateTrip)
			trips.GET("/:id", tripController.GetTrip)
			trips.PUT("/:id", tripController.UpdateTrip)
			trips.DELETE("/:id", tripController.DeleteTrip)
			trips.POST("/:id/items", tripController.AddTripItem)
			trips.DELETE("/:id/items/:item_id", tripController.RemoveTripItem)
			trips.PUT("/:id/items/reorder", tripController.ReorderTripItems)
		}

		// Friend routes
		friends := protected.Group("/friends")
		{
			friends.GET("/", friendController.GetFriends)
			friends.POST("/request/:user_id", friendController.SendFriendRequest)
			friends.POST("/requests/:request_id/accept", friendController.AcceptFriendRequest)
			friends.POST("/requests/:request_id/reject", friendController.RejectFriendRequest)
			friends.GET("/requests/pending", friendController.GetPendingRequests)
			friends.GET("/requests/sent", friendController.GetSentRequests)
			friends.POST("/block/:user_id", friendController.BlockUser)
			friends.DELETE("/block/:user_id", friendController.UnblockUser)
			friends.DELETE("/:user_id", friendController.RemoveFriend)
			friends.GET("/status/:user_id", friendController.GetFriendshipStatus)
		}

		// Feed routes
		feed := protected.Group("/feed")
		{
			feed.GET("/", feedController.GetFeed)
			feed.GET("/friends/:user_id", feedController.GetFriendFeed)
			feed.POST("/:kind/:id/like", feedController.LikeSubject)
			feed.DELETE("/:kind/:id/like", feedController.UnlikeSubject)
			feed.GET("/:kind/:id/comments", feedController.GetComments)
			feed.POST("/:kind/:id/comments", feedController.AddComment)
			feed.DELETE("/comments/:comment_id", feedController.DeleteComment)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}

		// Settings routes
		settings := protected.Group("/settings")
		{
			settings.GET("/", settingsController.GetSettings)
			settings.PUT("/", settingsController.UpdateSettings)
			settings.GET("/preview", settingsController.PreviewFormats)
		}

		// Weather routes
		protected.GET("/weather/forecast", weatherController.GetForecast)
	}
}
