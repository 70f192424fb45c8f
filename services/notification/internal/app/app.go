package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cusceda/pkg/config"
	"cusceda/pkg/jwt"
	"cusceda/pkg/logger"
	"cusceda/pkg/middleware"
	notificationHTTP "cusceda/services/notification/internal/controller/http"
	"cusceda/services/notification/internal/repo/persistent"
	"cusceda/services/notification/internal/repo/pubsub"
	"cusceda/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "cusceda/services/notification/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	r := NewRouter(cfg, log, db, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	log.Info("Notification service exited")
}

// NewRouter wires the notification feed. redisClient may be nil, which
// disables publishing and the live stream.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repositories
	sourceRepo := persistent.NewEventSourceRepository(db)
	notificationRepo := persistent.NewNotificationRepository(db)

	var publisher usecase.Publisher
	if redisClient != nil {
		publisher = pubsub.NewRedisPublisher(redisClient)
	}

	// Initialize UseCase
	opts := usecase.Options{
		RecentOrders:      cfg.NotificationRecentOrders,
		RecentSignups:     cfg.NotificationRecentSignups,
		LowStockThreshold: cfg.NotificationLowStockLimit,
	}
	notificationUseCase := usecase.NewNotificationUseCase(sourceRepo, notificationRepo, publisher, opts, log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, redisClient, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	protected := api.Group("/admin/notifications")
	protected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("admin"))
	{
		protected.GET("", notificationHandler.GetNotifications)
		protected.PATCH("", notificationHandler.MarkAsRead)
	}

	// Browsers cannot set headers on websocket upgrades
	api.GET("/admin/notifications/ws", middleware.QueryTokenMiddleware(jwtService), middleware.RequireRole("admin"), notificationHandler.HandleWebSocket)

	return r
}
