package main

import (
	"cusceda/pkg/cache"
	"cusceda/pkg/config"
	"cusceda/pkg/database"
	"cusceda/pkg/logger"
	notificationApp "cusceda/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Notification Service API
// @version         1.0
// @description     Admin notification feed: aggregates orders, stock, reviews, signups and support messages
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

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// The feed works without redis; only the live stream goes away.
		log.Warn("Failed to connect to redis: %v (continuing without live updates)", err)
		redisClient = nil
	}

	notificationApp.Run(cfg, log, db, redisClient)
}
