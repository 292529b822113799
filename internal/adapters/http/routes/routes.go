package routes

import (
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/handlers"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/middleware"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/config"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/qr"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	cleanerRepo := repositories.NewCleanerRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	otpRepo := repositories.NewSignupOTPRepository(db)

	// Initialize services
	authService := services.NewAuthService(studentRepo, cleanerRepo, adminRepo, otpRepo, cfg)
	requestService := services.NewRequestService(requestRepo, studentRepo, cleanerRepo, qr.NewVerifier())
	studentService := services.NewStudentService(studentRepo)
	adminService := services.NewAdminService(cleanerRepo)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	requestHandler := handlers.NewRequestHandler(requestService)
	studentHandler := handlers.NewStudentHandler(studentService)
	adminHandler := handlers.NewAdminHandler(adminService, statsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API group
	api := app.Group("/api")

	// Auth routes (public, stricter rate limit)
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/student/signup", authHandler.SignupStudent)
	auth.Post("/student/signup-otp", authHandler.RequestSignupOTP)
	auth.Post("/student/verify-otp", authHandler.VerifySignupOTP)
	auth.Post("/student/login", authHandler.LoginStudent)
	auth.Post("/cleaner/login", authHandler.LoginCleaner)
	auth.Post("/admin/login", authHandler.LoginAdmin)

	// Request routes (authenticated)
	requests := api.Group("/requests", middleware.AuthMiddleware(cfg))
	requests.Post("/", middleware.StudentOnly(), requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/pending", middleware.CleanerOnly(), requestHandler.ListPending)
	requests.Put("/:id/accept", middleware.CleanerOnly(), requestHandler.Accept)
	requests.Put("/:id/complete", middleware.CleanerOnly(), requestHandler.Complete)
	requests.Put("/:id/complete-scan", middleware.CleanerOnly(), requestHandler.CompleteScan)
	requests.Put("/:id/rate", middleware.StudentOnly(), requestHandler.Rate)

	// Student routes
	student := api.Group("/student", middleware.AuthMiddleware(cfg), middleware.StudentOnly())
	student.Get("/roommates", studentHandler.Roommates)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/cleaners", adminHandler.ListCleaners)
	admin.Post("/cleaners", adminHandler.AddCleaner)
	admin.Get("/cleaners/:id/stats", adminHandler.GetCleanerStats)
}
