package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/middleware"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/routes"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/config"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title CleanVIT API
// @version 1.0
// @description Hostel cleaning request management API

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default accounts in dev mode
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed default accounts: %v", err)
		}
	}

	// Daily stale-pending report (08:30)
	reminderService := services.NewReminderService(db)
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CleanVIT API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    10 << 20, // scan uploads
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
