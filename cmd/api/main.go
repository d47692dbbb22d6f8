package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"rebalancer/internal/ai"
	"rebalancer/internal/allocation"
	"rebalancer/internal/config"
	"rebalancer/internal/database"
	"rebalancer/internal/handlers"
	"rebalancer/internal/logger"
	"rebalancer/internal/middleware"
	"rebalancer/internal/quotes"
	"rebalancer/internal/services"
	"rebalancer/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "rebalancer/internal/docs" // Import swagger docs
)

// @title           Rebalancer API
// @version         1.0
// @description     Rebalancer aggregates brokerage holdings into region and category allocations, compares them against target weights, and recommends rebalancing trades.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// AI classifier and analyst are optional. Without a key the resolver
	// falls back to builtin classifications and analysis is unavailable.
	var classifier ai.Classifier
	var analyst ai.Analyst
	if appConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		classifier = gemini
		analyst = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, AI classification and analysis disabled")
	}

	quoteFetcher := quotes.NewClient(appConfig.QuoteAPIURL, appConfig.QuoteAPIKey, appConfig.QuoteTimeout)

	builder := allocation.NewBuilder(allocation.DefaultBuilderConfig())
	engine := allocation.NewEngine(allocation.EngineConfig{HoldThreshold: appConfig.HoldThreshold})

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	classificationService := services.NewClassificationService(db, classifier)
	snapshotService := services.NewSnapshotService(db, classificationService)
	targetService := services.NewTargetService(db)
	portfolioService := services.NewPortfolioService(snapshotService, classificationService, targetService, quoteFetcher, builder, engine)
	analysisService := services.NewAnalysisService(db, portfolioService, analyst)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	classificationHandler := handlers.NewClassificationHandler(classificationService)
	targetHandler := handlers.NewTargetHandler(targetService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	pipelineHandler := handlers.NewPipelineHandler(classificationService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Pipeline routes (API key protected, for scheduled jobs)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/reclassify", pipelineHandler.ReclassifyAll)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Snapshot routes
	snapshots := protected.Group("/snapshots")
	snapshots.POST("/upload", snapshotHandler.Upload)
	snapshots.GET("", snapshotHandler.List)
	snapshots.GET("/dates", snapshotHandler.Dates)
	snapshots.GET("/:id", snapshotHandler.Get)
	snapshots.DELETE("/:id", snapshotHandler.Delete)
	snapshots.DELETE("", snapshotHandler.Clear)

	// Classification routes
	classifications := protected.Group("/classifications")
	classifications.GET("", classificationHandler.List)
	classifications.GET("/:ticker", classificationHandler.Get)
	classifications.PUT("/:ticker", classificationHandler.Update)
	classifications.POST("/:ticker/reclassify", classificationHandler.Reclassify)

	// Target routes
	targets := protected.Group("/targets")
	targets.GET("", targetHandler.ListAll)
	targets.GET("/:dimension", targetHandler.Get)
	targets.PUT("/:dimension", targetHandler.Save)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/breakdown", portfolioHandler.Breakdown)
	portfolio.GET("/rebalance", portfolioHandler.Rebalance)
	portfolio.GET("/live", portfolioHandler.Live)

	// Analysis routes
	analysis := protected.Group("/analysis")
	analysis.GET("", analysisHandler.Get)
	analysis.POST("/generate", analysisHandler.Generate)

	log.Infof("Starting Rebalancer backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
