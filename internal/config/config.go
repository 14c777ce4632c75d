package config

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Catalog sources understood by CATALOG_SOURCE
const (
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
	SourceMongo  = "mongo"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	CatalogSource  string `envconfig:"CATALOG_SOURCE" default:"yaml"`
	CatalogPath    string `envconfig:"CATALOG_PATH" default:"./items.yml"`
	DBPath         string `envconfig:"DB_PATH" default:"./store.db"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/repository/migrations"`

	MongoURI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName     string `envconfig:"MONGO_DB_NAME" default:"storedb"`
	MongoCollection string `envconfig:"MONGO_COLLECTION" default:"items"`

	// Redis and Kafka are optional; empty values disable them
	RedisAddr     string   `envconfig:"REDIS_ADDR"`
	RedisPassword string   `envconfig:"REDIS_PASSWORD"`
	KafkaBrokers  []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic    string   `envconfig:"KAFKA_TOPIC" default:"store-checkout"`

	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceYAML, SourceSQLite, SourceMongo:
	default:
		return errors.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// CatalogKey names one concrete catalog for the shared cache: the source
// plus the file, database or collection it reads. The location is hashed
// so credentials in MONGO_URI never appear in a key.
func (c *Config) CatalogKey(source string) string {
	var location string
	switch source {
	case SourceYAML:
		location = absPath(c.CatalogPath)
	case SourceSQLite:
		location = absPath(c.DBPath)
	case SourceMongo:
		location = c.MongoURI + "|" + c.MongoDBName + "|" + c.MongoCollection
	}
	return source + ":" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(location)).String()
}

// CacheCatalog reports whether the catalog snapshot goes through Redis.
// YAML files are edited in place and read faster from disk, so they never do.
func (c *Config) CacheCatalog() bool {
	return c.RedisAddr != "" && c.CatalogSource != SourceYAML
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
