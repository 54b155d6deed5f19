package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hf-endpoint-service/internal/adapters/primary/http/handlers"
	"hf-endpoint-service/internal/adapters/primary/http/middleware"
	"hf-endpoint-service/internal/adapters/secondary/filestore"
	"hf-endpoint-service/internal/adapters/secondary/huggingface"
	"hf-endpoint-service/internal/adapters/secondary/postgres"
	"hf-endpoint-service/internal/config"
	"hf-endpoint-service/internal/core/domain"
	"hf-endpoint-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Secondary adapters
	recordRepo := postgres.NewEndpointRecordRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	responseRepo := postgres.NewResponseLogRepository(pool)
	files := filestore.NewLocal(cfg.Files.Root)

	// Settings are the config provider for the remote clients: persisted
	// rows override the file/env defaults below.
	settingsSvc := services.NewSettingsService(settingsRepo, responseRepo, domain.Settings{
		AccessToken: cfg.HuggingFace.AccessToken,
		URL:         cfg.HuggingFace.InferenceURL,
		Logging:     cfg.HuggingFace.Logging,
	})

	hfClient := huggingface.NewClient(settingsSvc, files, responseRepo, huggingface.Options{
		EndpointURL: cfg.HuggingFace.EndpointURL,
		Timeout:     cfg.HuggingFace.Timeout,
	})

	// Core services
	endpointSvc := services.NewEndpointService(hfClient, recordRepo)
	inferenceSvc := services.NewInferenceService(hfClient)

	// Primary adapter
	h := handlers.New(endpointSvc, inferenceSvc, settingsSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/huggingface")
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
