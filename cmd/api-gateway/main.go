package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hassansardar246/eclero-availability-api/api/swagger"
	"github.com/hassansardar246/eclero-availability-api/internal/handler"
	"github.com/hassansardar246/eclero-availability-api/internal/middleware"
	"github.com/hassansardar246/eclero-availability-api/internal/repository"
	"github.com/hassansardar246/eclero-availability-api/internal/service"
	"github.com/hassansardar246/eclero-availability-api/pkg/cache"
	"github.com/hassansardar246/eclero-availability-api/pkg/config"
	"github.com/hassansardar246/eclero-availability-api/pkg/database"
	"github.com/hassansardar246/eclero-availability-api/pkg/logger"
	corsmiddleware "github.com/hassansardar246/eclero-availability-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hassansardar246/eclero-availability-api/pkg/middleware/requestid"
)

// @title Eclero Availability API
// @version 0.1.0
// @description Tutor calendar availability resolution service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis only backs the profile lookup cache; the service stays up
	// without it.
	var cacheSvc *service.CacheService
	if cfg.Availability.ProfileCacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, profile cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.ProfileCacheTTL, logr, true)
		}
	}

	availabilityRepo := repository.NewAvailabilityRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	availabilitySvc := service.NewAvailabilityService(
		availabilityRepo,
		profileRepo,
		cacheSvc,
		metricsSvc,
		validator.New(),
		logr,
		service.AvailabilityOptions{
			DefaultWindowDays: cfg.Availability.DefaultWindowDays,
			MaxWindowDays:     cfg.Availability.MaxWindowDays,
			IncrementMinutes:  cfg.Availability.SlotIncrementMinutes,
			ProfileCacheTTL:   cfg.Availability.ProfileCacheTTL,
		},
	)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(availabilitySvc, logr)
	}

	availabilityHandler := newAvailabilityHandler(availabilitySvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	r.GET("/availability/calendar", availabilityHandler.Calendar)
	if cfg.Export.Enabled {
		r.GET("/availability/calendar/export", availabilityHandler.Export)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newAvailabilityHandler keeps the typed-nil exporter out of the
// handler's interface field when export is disabled.
func newAvailabilityHandler(availabilitySvc *service.AvailabilityService, exportSvc *service.ExportService) *handler.AvailabilityHandler {
	if exportSvc == nil {
		return handler.NewAvailabilityHandler(availabilitySvc, nil)
	}
	return handler.NewAvailabilityHandler(availabilitySvc, exportSvc)
}
