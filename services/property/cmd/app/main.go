package main

import (
	"cusceda/pkg/cache"
	"cusceda/pkg/config"
	"cusceda/pkg/database"
	"cusceda/pkg/logger"
	"cusceda/pkg/s3"
	propertyApp "cusceda/services/property/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Property Service API
// @version         1.0
// @description     Public property catalogue and admin listing management
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Failed to initialize S3 client: %v (uploads disabled)", err)
		s3Client = nil
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (detail cache disabled)", err)
		redisClient = nil
	}

	propertyApp.Run(cfg, log, db, s3Client, redisClient)
}
