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
	"cusceda/pkg/s3"
	propertyHTTP "cusceda/services/property/internal/controller/http"
	"cusceda/services/property/internal/repo/cache"
	"cusceda/services/property/internal/repo/persistent"
	"cusceda/services/property/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "cusceda/services/property/docs" // Swagger docs
)

// multipart bodies above this spill to disk
const maxMultipartMemory = 32 << 20

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	var media usecase.MediaUploader
	if s3Client != nil {
		media = s3Client
	}
	r := NewRouter(cfg, log, db, media, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Property service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down property service...")

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

	log.Info("Property service exited")
}

// NewRouter wires the public catalogue and the admin property routes.
// media and redisClient may be nil: uploads then fail and detail reads skip
// the cache and rate limiting.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, media usecase.MediaUploader, redisClient *redis.Client) *gin.Engine {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repositories
	propertyRepo := persistent.NewPropertyRepository(db)

	var detailCache usecase.DetailCache
	if redisClient != nil {
		detailCache = cache.NewRedisDetailCache(redisClient)
	}

	// Initialize UseCase
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, media, detailCache, log)

	// Initialize HTTP handlers
	propertyHandler := propertyHTTP.NewPropertyHandler(propertyUseCase, log)

	r := gin.Default()
	r.MaxMultipartMemory = maxMultipartMemory

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	public := api.Group("/properties")
	{
		public.GET("", propertyHandler.ListProperties)
		public.GET("/search", propertyHandler.SearchProperties)
		public.GET("/:id", propertyHandler.GetProperty)
		public.GET("/:id/related", propertyHandler.GetRelatedProperties)
	}

	admin := api.Group("/admin/properties")
	admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("admin"))
	if redisClient != nil {
		admin.Use(middleware.RateLimitMiddleware(redisClient, 120, time.Minute))
	}
	{
		admin.GET("", propertyHandler.ListAdminProperties)
		admin.POST("", propertyHandler.CreateProperty)
		admin.PUT("/:id", propertyHandler.UpdateProperty)
		admin.PATCH("/:id", propertyHandler.SetVisibility)
		admin.DELETE("/:id", propertyHandler.DeleteProperty)
	}

	return r
}
