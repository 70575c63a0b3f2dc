package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/server/handler"
	mid "github.com/suteetoe/catalogadmin/internal/server/middleware"
	"github.com/suteetoe/catalogadmin/pkg/config"
	"github.com/suteetoe/catalogadmin/pkg/database"
	"github.com/suteetoe/catalogadmin/pkg/jwtutil"
	"github.com/suteetoe/catalogadmin/pkg/logger"
	"github.com/suteetoe/catalogadmin/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("catalogd")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalogd", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established", zap.String("driver", appConfig.DB.Driver))

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded images
	upload := &handler.UploadHandler{Dir: appConfig.Upload.Dir}
	e.Static("/uploads", appConfig.Upload.Dir)

	// API routes, optionally behind bearer auth
	var guards []echo.MiddlewareFunc
	if appConfig.JWT.Enabled {
		guards = append(guards, mid.AuthMiddleware)
		e.POST("/auth/dev-token", handler.DevToken)
		log.Info("Bearer auth enabled")
	}

	productAPI := e.Group("/products", guards...)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	categoryAPI := e.Group("/categories", guards...)
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.POST("", handler.CreateCategory)

	e.POST("/upload/product", upload.UploadProductImage, guards...)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
