package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"trailhead-api/config"
	"trailhead-api/database"
	"trailhead-api/jobs"
	"trailhead-api/middleware"
	"trailhead-api/realtime"
	"trailhead-api/routes"
	"trailhead-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Realtime change hub
	hub := realtime.NewHub()
	go hub.Run()

	// Background cleanup of read notifications
	cleanupJob := jobs.NewNotificationCleanupJob(db, 6*time.Hour, 30*24*time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, hub, emailService)

	// Start server
	log.Printf("Starting Trailhead API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
