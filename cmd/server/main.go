package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/config"
	"github.com/mohammad-ariqat/taskManager/internal/constants"
	"github.com/mohammad-ariqat/taskManager/internal/database"
	"github.com/mohammad-ariqat/taskManager/internal/handlers"
	"github.com/mohammad-ariqat/taskManager/internal/middleware"
	"github.com/mohammad-ariqat/taskManager/internal/repository"
	"github.com/mohammad-ariqat/taskManager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	statsService := services.NewStatsService(taskRepo, categoryRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	dashboardHandler := handlers.NewDashboardHandler(statsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.DELETE("/me", middleware.RequireAuth(), authHandler.DeleteAccount)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskOwnership(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskOwnership(), taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", middleware.RequireTaskOwnership(), taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", middleware.RequireTaskOwnership(), taskHandler.DeleteTask)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth())
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", middleware.RequireCategoryOwnership(), categoryHandler.GetCategory)
			categories.PATCH("/:id", middleware.RequireCategoryOwnership(), categoryHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireCategoryOwnership(), categoryHandler.DeleteCategory)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
