package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	I18n     I18nConfig
	Pricing  PricingConfig
}

type ServerConfig struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:":8080"`
	GRPCPort        string        `env:"GRPC_PORT" envDefault:":8082"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
}

type PostgresConfig struct {
	Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string        `env:"POSTGRES_PORT" envDefault:"5433"`
	User            string        `env:"POSTGRES_USER" envDefault:"omnipos"`
	Password        string        `env:"POSTGRES_PASSWORD" envDefault:"omnipos"`
	DBName          string        `env:"POSTGRES_DB" envDefault:"omnipos_pricing"`
	SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"1m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"true"`
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC_IMPORTS" envDefault:"pricing.imports"`
	GroupID string   `env:"KAFKA_GROUP_IMPORTS" envDefault:"pricing-importer"`
}

type ElasticsearchConfig struct {
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" envDefault:"http://localhost:9200" envSeparator:","`
	Username  string   `env:"ELASTICSEARCH_USERNAME"`
	Password  string   `env:"ELASTICSEARCH_PASSWORD"`
}

type I18nConfig struct {
	// ExtraLocale is an optional message file loaded over the embedded ones.
	ExtraLocale string `env:"I18N_EXTRA_LOCALE"`
}

type PricingConfig struct {
	// ReconcileWorkers bounds concurrent master lookups during a bulk upload.
	ReconcileWorkers   int             `env:"RECONCILE_WORKERS" envDefault:"8"`
	LookupCacheTTL     time.Duration   `env:"LOOKUP_CACHE_TTL" envDefault:"5m"`
	HighValueThreshold decimal.Decimal `env:"HIGH_VALUE_THRESHOLD" envDefault:"50000"`
}

func LoadEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Pricing.ReconcileWorkers < 1 {
		return nil, fmt.Errorf("RECONCILE_WORKERS must be at least 1, got %d", cfg.Pricing.ReconcileWorkers)
	}
	if cfg.Pricing.HighValueThreshold.IsNegative() {
		return nil, fmt.Errorf("HIGH_VALUE_THRESHOLD must not be negative")
	}
	return &cfg, nil
}
