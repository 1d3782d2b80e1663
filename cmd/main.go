package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/rbac"
	"github.com/sirupsen/logrus"

	"shipping-quote-service/internal/config"
	"shipping-quote-service/internal/events"
	"shipping-quote-service/internal/handlers"
	"shipping-quote-service/internal/middleware"
	"shipping-quote-service/internal/models"
	"shipping-quote-service/internal/repository"
	"shipping-quote-service/internal/services"
)

func main() {
	log.Println("Starting Shipping Quote Service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded successfully")

	// Connect to database
	db, err := connectDatabase(cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	// Run migrations
	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed default zones, size classes, methods and options
	if err := repository.SeedShippingRules(db); err != nil {
		log.Printf("Warning: Failed to seed shipping rules: %v", err)
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without rule set caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without rule set caching...")
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for rule set caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, rule set caching disabled")
	}

	// Initialize NATS events publisher
	eventLogger := logrus.New()
	eventLogger.SetFormatter(&logrus.JSONFormatter{})
	eventLogger.SetLevel(logrus.InfoLevel)

	eventsPublisher, err := events.NewPublisher(eventLogger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		eventsPublisher = nil
	} else {
		defer eventsPublisher.Close()
		log.Println("✓ NATS events publisher initialized")
	}

	// Initialize repository and services
	rulesRepo := repository.NewRulesRepository(db, redisClient, cfg.RulesCacheTTL)
	quoteService := services.NewQuoteService(rulesRepo, eventsPublisher, eventLogger)
	log.Println("Quote service initialized")

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	referenceHandler := handlers.NewReferenceHandler(rulesRepo)
	log.Println("Handlers initialized")

	// Initialize RBAC middleware
	staffServiceURL := os.Getenv("STAFF_SERVICE_URL")
	if staffServiceURL == "" {
		staffServiceURL = "http://staff-service:8080"
	}
	rbacMw := rbac.NewMiddlewareWithURL(staffServiceURL, nil)
	log.Println("✓ RBAC middleware initialized")

	// Setup router
	router := setupRouter(quoteHandler, referenceHandler, cfg, rbacMw, redisClient)
	log.Printf("Router configured")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting server on %s (environment: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// connectDatabase establishes a connection to the PostgreSQL database
func connectDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ShippingZone{},
		&models.ZoneCountry{},
		&models.SizeClass{},
		&models.ShippingMethod{},
		&models.ShippingOption{},
		&models.RateRule{},
		&models.FreeShippingThreshold{},
		&models.OptionPrice{},
	)
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(quoteHandler *handlers.QuoteHandler, referenceHandler *handlers.ReferenceHandler, cfg *config.Config, rbacMw *rbac.Middleware, redisClient *redis.Client) *gin.Engine {
	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())

	// Security headers middleware
	router.Use(gosharedmw.SecurityHeaders())

	// Rate limiting middleware (uses Redis for distributed rate limiting)
	if redisClient != nil {
		router.Use(gosharedmw.RedisRateLimitMiddlewareWithProfile(redisClient, "standard"))
		log.Println("✓ Redis-based rate limiting enabled")
	} else {
		router.Use(gosharedmw.RateLimit())
		log.Println("✓ In-memory rate limiting enabled (Redis unavailable)")
	}

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())

	// IstioAuth middleware - extracts JWT claims from x-jwt-claim-* headers
	// This MUST come before TenantMiddleware and RBAC middleware
	router.Use(gosharedmw.IstioAuth(gosharedmw.IstioAuthConfig{
		RequireAuth:        false,
		AllowLegacyHeaders: true,
		SkipPaths: []string{
			"/health",
		},
	}))

	// Tenant context middleware (reads from IstioAuth context or legacy headers)
	router.Use(middleware.TenantMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		// Quotes - computed at checkout (require shipping:read permission)
		api.POST("/quotes", rbacMw.RequirePermission(rbac.PermissionShippingRead), quoteHandler.GetQuote)

		// Reference data - read operations (require shipping:read permission)
		api.GET("/shipping-zones", rbacMw.RequirePermission(rbac.PermissionShippingRead), referenceHandler.ListZones)
		api.GET("/shipping-methods", rbacMw.RequirePermission(rbac.PermissionShippingRead), referenceHandler.ListMethods)
		api.GET("/shipping-options", rbacMw.RequirePermission(rbac.PermissionShippingRead), referenceHandler.ListOptions)
		api.GET("/size-classes", rbacMw.RequirePermission(rbac.PermissionShippingRead), referenceHandler.ListSizeClasses)

		// Cache invalidation (require shipping:manage permission)
		api.POST("/shipping-rules/refresh", rbacMw.RequirePermission(rbac.PermissionShippingManage), quoteHandler.RefreshRules)
	}

	return router
}
