package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/blurrhq/hr-portal-api/internal/config"
	"github.com/blurrhq/hr-portal-api/internal/database"
	"github.com/blurrhq/hr-portal-api/internal/handlers"
	"github.com/blurrhq/hr-portal-api/internal/middleware"
	"github.com/blurrhq/hr-portal-api/internal/repository"
	"github.com/blurrhq/hr-portal-api/internal/services"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	salaryRepo := repository.NewSalaryRepository(db)

	// Services
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	authService := services.NewAuthService(userRepo, orgService)
	employeeService := services.NewEmployeeService(employeeRepo, orgRepo)
	projectService := services.NewProjectService(projectRepo, orgRepo, cfg.ProjectDeletePolicy)
	taskService := services.NewTaskService(taskRepo, projectRepo, employeeRepo)
	salaryService := services.NewSalaryService(salaryRepo, employeeRepo)
	chatService := services.NewChatService(taskRepo, projectRepo)

	// Provision the default organization before serving traffic
	if _, err := orgService.EnsureDefault(); err != nil {
		log.Fatalf("Failed to provision default organization: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
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
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("portal_session", store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	salaryHandler := handlers.NewSalaryHandler(salaryService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HR Portal API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.POST("/change-password", middleware.RequireAuth(), authHandler.ChangePassword)
			auth.PATCH("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Employee routes (protected)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth())
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		// Salary ledger routes (protected)
		salaries := api.Group("/salaries")
		salaries.Use(middleware.RequireAuth())
		{
			salaries.GET("", salaryHandler.ListMonth)
			salaries.POST("/reconcile", salaryHandler.Reconcile)
			salaries.POST("/reconcile/batch", salaryHandler.ReconcileBatch)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("", taskHandler.UpdateTask)
			tasks.GET("/:id", middleware.LoadTask(), taskHandler.GetTask)
			tasks.PATCH("/:id/status", middleware.LoadTask(), taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", middleware.LoadTask(), taskHandler.DeleteTask)
		}

		// Chat assistant (protected)
		api.POST("/chat", middleware.RequireAuth(), chatHandler.Respond)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
