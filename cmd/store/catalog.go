package main

import (
	"context"
	"os"

	"github.com/DanielFadlon/simple-store/internal/cache"
	"github.com/DanielFadlon/simple-store/internal/config"
	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/logger"
	"github.com/DanielFadlon/simple-store/internal/repository"
	"github.com/DanielFadlon/simple-store/internal/service"
	"github.com/DanielFadlon/simple-store/internal/shell"
	"github.com/DanielFadlon/simple-store/internal/store"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type catalogStore interface {
	repository.CatalogRepository
	repository.CatalogWriter
}

func openRepository(ctx context.Context, cfg *config.Config, source string) (catalogStore, error) {
	switch source {
	case config.SourceSQLite:
		repo, err := repository.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case config.SourceMongo:
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoRepository(db, cfg.MongoCollection)
		if err := repo.CreateIndexes(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case config.SourceYAML:
		return yamlOnly{repository.NewYAMLRepository(cfg.CatalogPath)}, nil
	default:
		return nil, errors.Errorf("unknown catalog source %q", source)
	}
}

// yamlOnly rejects writes; the YAML file is edited by hand.
type yamlOnly struct {
	*repository.YAMLRepository
}

func (yamlOnly) SeedItems(context.Context, []domain.Item) error {
	return errors.New("yaml catalogs are read-only")
}

func shellCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(serviceName, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repo, err := openRepository(c.Context, cfg, cfg.CatalogSource)
	if err != nil {
		return err
	}
	defer repo.Close()

	items, err := repo.LoadItems(c.Context)
	if err != nil {
		return err
	}
	log.Debug("catalog loaded", zap.String("source", cfg.CatalogSource), zap.Int("items", len(items)))

	return shell.Run(c.Context, os.Stdin, os.Stdout, store.New(items))
}

func importCommand(c *cli.Context) error {
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

	target := c.String("target")
	if target != config.SourceSQLite && target != config.SourceMongo {
		return errors.Errorf("import target must be %q or %q, got %q", config.SourceSQLite, config.SourceMongo, target)
	}

	file := c.String("file")
	if file == "" {
		file = cfg.CatalogPath
	}
	items, err := repository.NewYAMLRepository(file).LoadItems(ctx)
	if err != nil {
		return err
	}

	repo, err := openRepository(ctx, cfg, target)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SeedItems(ctx, items); err != nil {
		return err
	}

	if cfg.RedisAddr != "" {
		client := newRedisClient(cfg)
		defer client.Close()
		service.NewCatalogService(repo, cache.NewRedisCache(client), cfg.CatalogKey(target), log).Invalidate(ctx)
	}

	log.Info("catalog imported", zap.String("file", file), zap.String("target", target), zap.Int("items", len(items)))
	return nil
}
