package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/cache/memory"
	"taskmanager/internal/adapter/cache/redis"
	"taskmanager/internal/adapter/database"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/telemetry"
	"taskmanager/internal/core/port"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
)

const serviceVersion = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)

	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger, err := logger.New(logger.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		Level:       cfg.Telemetry.LogLevel,
		LokiURL:     cfg.Telemetry.LokiURL,
	})

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer appLogger.Sync()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		appLogger.Sync()
		os.Exit(1)
	}

	appLogger.Info("Shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.AppEnv,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	})

	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	tel.Serve(appLogger)
	tel.AppMetrics.StartSystemMetrics(ctx, 15*time.Second)

	db, err := database.Open(ctx, cfg.Database)

	if err != nil {
		return err
	}

	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	cache, err := newCache(ctx, cfg.Cache)

	if err != nil {
		return err
	}

	defer cache.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container := httpadapter.NewContainer(cfg, db, cache, tel.AppMetrics, appLogger)

	router := httpadapter.SetupRouter(container, httpadapter.RouterConfig{
		ServiceName:  cfg.Telemetry.ServiceName,
		EnforceHTTPS: cfg.EnforceHTTPS,
		Metrics:      tel.AppMetrics,
		Logger:       appLogger,
	})

	appLogger.Info("Configuration loaded",
		zap.String("environment", cfg.AppEnv),
		zap.String("database", cfg.Database.Type),
		zap.Bool("https_enforced", cfg.EnforceHTTPS),
		zap.Bool("shared_cache", cfg.Cache.RedisURL != ""))

	return httpadapter.Run(ctx, httpadapter.NewServer(cfg.Port, router), appLogger)
}

func newCache(ctx context.Context, cfg config.CacheConfig) (port.CacheRepository, error) {
	if cfg.RedisURL != "" {
		shared, err := redis.New(ctx, cfg.RedisURL)

		if err != nil {
			return nil, err
		}

		return shared, nil
	}

	return memory.New(cfg.IdentityTTL, time.Minute), nil
}
