package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/internal/handler"
	"github.com/suteetoe/platformadmin/internal/middleware"
	"github.com/suteetoe/platformadmin/pkg/config"
	"github.com/suteetoe/platformadmin/pkg/database"
	"github.com/suteetoe/platformadmin/pkg/jwtutil"
	"github.com/suteetoe/platformadmin/pkg/logger"
	"github.com/suteetoe/platformadmin/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting platform-admin service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Platform-admin routes - all require a superadmin bearer token
	admin := e.Group("/platform-admin")
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.RequireSuperAdmin)

	// Tenant management
	tenants := admin.Group("/tenants")
	tenants.GET("", handler.ListTenants)
	tenants.POST("", handler.CreateTenant)
	tenants.PUT("/:id", handler.UpdateTenant)
	tenants.DELETE("/:id", handler.DeleteTenant)

	// Role management
	roles := admin.Group("/roles")
	roles.GET("", handler.ListRoles)
	roles.POST("", handler.CreateRole)
	roles.PATCH("/:id", handler.UpdateRole)
	roles.DELETE("/:id", handler.DeleteRole)

	// User management
	users := admin.Group("/users")
	users.GET("", handler.ListUsers)
	users.POST("/platform-admin", handler.CreatePlatformAdmin)
	users.POST("/tenant-user", handler.CreateTenantUser)
	users.PATCH("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
