package main

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielFadlon/simple-store/internal/cache"
	"github.com/DanielFadlon/simple-store/internal/config"
	"github.com/DanielFadlon/simple-store/internal/events"
	h "github.com/DanielFadlon/simple-store/internal/http"
	"github.com/DanielFadlon/simple-store/internal/logger"
	"github.com/DanielFadlon/simple-store/internal/service"
	"github.com/DanielFadlon/simple-store/internal/session"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(serviceName, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repo, err := openRepository(ctx, cfg, cfg.CatalogSource)
	if err != nil {
		return err
	}
	defer repo.Close()

	var catalogCache cache.CatalogCache = cache.Noop{}
	if cfg.CacheCatalog() {
		client := newRedisClient(cfg)
		defer client.Close()
		catalogCache = cache.NewRedisCache(client)
		log.Info("catalog cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	catalog := service.NewCatalogService(repo, catalogCache, cfg.CatalogKey(cfg.CatalogSource), log)
	items, err := catalog.Load(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.String("source", cfg.CatalogSource), zap.Int("items", len(items)))

	sessions := session.NewManager(items, session.WithTTL(cfg.SessionTTL), session.WithLogger(log))
	defer sessions.Close()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("checkout events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	shop := service.NewShopService(sessions, publisher, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(h.NewRouter(shop, log, cfg.RequestTimeout), serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return errors.Wrap(err, "http server failed")
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	log.Info("server exited")
	return nil
}

func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
