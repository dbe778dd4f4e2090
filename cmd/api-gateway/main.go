package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aiinbox/dayflow-api/api/swagger"
	"github.com/aiinbox/dayflow-api/internal/clients/forecast"
	"github.com/aiinbox/dayflow-api/internal/handler"
	"github.com/aiinbox/dayflow-api/internal/ics"
	"github.com/aiinbox/dayflow-api/internal/middleware"
	"github.com/aiinbox/dayflow-api/internal/repository"
	"github.com/aiinbox/dayflow-api/internal/service"
	"github.com/aiinbox/dayflow-api/pkg/cache"
	"github.com/aiinbox/dayflow-api/pkg/config"
	"github.com/aiinbox/dayflow-api/pkg/database"
	"github.com/aiinbox/dayflow-api/pkg/logger"
	corsmiddleware "github.com/aiinbox/dayflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/aiinbox/dayflow-api/pkg/middleware/requestid"
)

// @title Dayflow API
// @version 0.1.0
// @description Calendar workload scoring and slot-finding service
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional; without it the schedule view is computed on every
	// request.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, view caching disabled", "error", err)
		redisClient = nil
	}

	icsClient, err := ics.NewClient(cfg.Calendar, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init calendar client", "error", err)
	}

	metricsSvc := service.NewMetricsService()
	icsClient.SetRecorder(metricsSvc)

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.CacheTTL, logr, cfg.Schedule.CacheEnabled && redisClient != nil)

	rangeRepo := repository.NewRangeRepository(db)
	configRepo := repository.NewEventConfigRepository(db)

	rangeSvc := service.NewRangeService(rangeRepo, cacheSvc, logr)
	configSvc := service.NewEventConfigService(configRepo, cacheSvc, logr)
	scheduleSvc := service.NewScheduleService(icsClient, rangeRepo, configRepo, cacheSvc, metricsSvc, logr, cfg.Schedule, cfg.Suggestions)
	forecastSvc := service.NewForecastService(forecast.NewClient(cfg.Forecast), scheduleSvc, logr, cfg.Forecast)
	reportSvc := service.NewReportService(scheduleSvc, logr, cfg.Reports)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	rangeHandler := handler.NewRangeHandler(rangeSvc)
	configHandler := handler.NewEventConfigHandler(configSvc)
	forecastHandler := handler.NewForecastHandler(forecastSvc, icsClient.Location())
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/schedule", scheduleHandler.View)
		api.POST("/suggestions/slot", scheduleHandler.BestSlot)

		api.GET("/ranges", rangeHandler.List)
		api.POST("/ranges", rangeHandler.Create)
		api.GET("/ranges/:id", rangeHandler.Get)
		api.PUT("/ranges/:id", rangeHandler.Update)
		api.DELETE("/ranges/:id", rangeHandler.Delete)

		api.GET("/event-configs", configHandler.List)
		api.PUT("/event-configs", configHandler.Upsert)
		api.GET("/event-configs/:title", configHandler.Get)
		api.DELETE("/event-configs/:title", configHandler.Delete)

		api.GET("/forecast", forecastHandler.Get)
		api.GET("/reports/workload", reportHandler.Workload)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
