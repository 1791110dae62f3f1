package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/admin"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/auth"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/database"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/enrollment"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/groups"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/lessons"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/membership"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/products"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/stats"
)

// @title Training Course API
// @version 1.0
// @description Course catalog with capacity-bounded group enrollment.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Load .env if present; real config comes from the environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dbPath := os.Getenv("COURSES_DB_PATH")
	if dbPath == "" {
		dbPath = "courses.db"
	}

	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "training-course-api",
			})
		})

		db := database.GetDB()

		// Auth routes (public)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Product catalog and stats (public, like the storefront)
		productsHandler := products.NewHandler(db)
		productsHandler.RegisterRoutes(api.Group(""))

		statsHandler := stats.NewHandler(db)
		statsHandler.RegisterRoutes(api.Group(""))

		// Course signup and lesson access (authenticated students)
		enrollmentHandler := enrollment.NewHandler(db)
		enrollmentHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))

		lessonsHandler := lessons.NewHandler(db)
		lessonsHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))

		// Admin routes (JWT only, admin role required)
		adminGroup := api.Group("/admin")
		adminGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())

		adminHandler := admin.NewHandler(db)
		adminHandler.RegisterRoutes(adminGroup)

		productsHandler.RegisterAdminRoutes(adminGroup)

		lessonsHandler.RegisterAdminRoutes(adminGroup)

		groupsHandler := groups.NewHandler(db)
		groupsHandler.RegisterRoutes(adminGroup)
		groupsHandler.RegisterStudentRoutes(adminGroup)

		membershipHandler := membership.NewHandler(db)
		membershipHandler.RegisterRoutes(adminGroup)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting course server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the database.
func ensureAdminExists() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:        "admin@courses.local",
		Name:         "Admin",
		PasswordHash: hashedPassword,
		SystemRole:   models.SystemRoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: admin@courses.local (password: changeme)")
	return nil
}
