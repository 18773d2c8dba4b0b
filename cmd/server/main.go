package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	docs "gbce/docs"
	appstocks "gbce/internal/application/service/stocks"
	"gbce/internal/config"
	"gbce/internal/infrastructure/broker"
	"gbce/internal/infrastructure/catalog"
	infrahttp "gbce/internal/interfaces/http"
	"gbce/internal/observability"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	defs, err := loadDefinitions(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatalf("failed to load stock catalog: %v", err)
	}
	registry, err := catalog.NewRegistryFromDefinitions(cfg.Index.Name, defs)
	if err != nil {
		logger.Fatalf("failed to build stock registry: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"stocks": len(defs),
		"index":  cfg.Index.Name,
	}).Info("stock registry ready")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	metrics := observability.NewMetrics("gbce")
	stockService := appstocks.NewService(registry, logger, appstocks.WithMetrics(metrics))

	var consumer *broker.Consumer
	if cfg.RabbitMQ.URL != "" {
		consumer, err = broker.NewConsumer(cfg.RabbitMQ, stockService, logger, metrics)
		if err != nil {
			logger.Fatalf("failed to init rabbitmq consumer: %v", err)
		}
		if err := consumer.Start(ctx); err != nil {
			logger.Fatalf("failed to start rabbitmq consumer: %v", err)
		}
	}

	handlerOpts := []infrahttp.Option{infrahttp.WithMetrics(metrics)}
	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	switch {
	case redisClient != nil:
		handlerOpts = append(handlerOpts, infrahttp.WithCache(infrahttp.NewRedisCache(redisClient), cacheTTL))
	case cfg.Cache.InMemory:
		handlerOpts = append(handlerOpts, infrahttp.WithCache(infrahttp.NewMemoryCache(cacheTTL), cacheTTL))
	}
	handler := infrahttp.NewHandler(stockService, handlerOpts...)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if consumer != nil {
		if err := consumer.Close(shutdownCtx); err != nil {
			logger.Errorf("rabbitmq consumer shutdown error: %v", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
	}
	logger.Info("server stopped")
}

// loadDefinitions reads the listing from Postgres when a DSN is configured.
func loadDefinitions(ctx context.Context, cfg config.PostgresConfig, logger *logrus.Logger) ([]catalog.Definition, error) {
	if cfg.DSN == "" {
		logger.Info("DATABASE_DSN not set, using built-in GBCE listing")
		return catalog.DefaultDefinitions(), nil
	}
	source, err := catalog.NewPostgresSource(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return source.LoadDefinitions(ctx)
}
