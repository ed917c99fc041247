package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/washpoint/admin-api/internal/cache"
	"github.com/washpoint/admin-api/internal/email"
	internalworker "github.com/washpoint/admin-api/internal/worker"
	"github.com/washpoint/admin-api/pkg/logger"
	"github.com/washpoint/admin-api/pkg/messaging/redis"
	"github.com/washpoint/admin-api/pkg/worker"
)

const (
	BackendPostgres = "postgres"
	BackendBolt     = "bolt"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// StorageConfig selects the persistence backend. Postgres is the production
// choice; bolt runs the whole API out of a single local file and needs no
// external services.
type StorageConfig struct {
	Backend  string `mapstructure:"backend"`
	BoltPath string `mapstructure:"bolt_path"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxEntries      int           `mapstructure:"max_entries"`
}

type OutboxConfig struct {
	Channel       string        `mapstructure:"channel"`
	BatchSize     int           `mapstructure:"batch_size"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

type CleanupConfig struct {
	Schedule              string        `mapstructure:"schedule"`
	OutboxRetention       time.Duration `mapstructure:"outbox_retention"`
	NotificationRetention time.Duration `mapstructure:"notification_retention"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Outbox    OutboxConfig     `mapstructure:"outbox"`
	Cleanup   CleanupConfig    `mapstructure:"cleanup"`
	SMTP      email.SMTPConfig `mapstructure:"smtp"`
	Logger    logger.Config    `mapstructure:"logger"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
}

// LoadConfig reads config.yml from the usual locations and overlays
// WASH_-prefixed environment variables (WASH_DATABASE_HOST and so on).
// A missing file is fine; env vars and defaults carry a full setup.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	v.AddConfigPath("/app/config")

	v.SetEnvPrefix("WASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Storage.Backend != BackendPostgres && config.Storage.Backend != BackendBolt {
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_header_bytes", 1<<20)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "washpoint")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("storage.backend", BackendPostgres)
	v.SetDefault("storage.bolt_path", "washpoint.db")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("outbox.channel", "entity-events")
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("outbox.poll_interval", 5*time.Second)
	v.SetDefault("outbox.retry_attempts", 3)
	v.SetDefault("outbox.retry_delay", time.Second)
	v.SetDefault("outbox.max_retries", 5)

	v.SetDefault("cleanup.schedule", "@daily")
	v.SetDefault("cleanup.outbox_retention", 24*time.Hour)
	v.SetDefault("cleanup.notification_retention", 30*24*time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.console", true)
	v.SetDefault("logger.file.enabled", false)
	v.SetDefault("logger.file.path", "logs/washpoint.log")
	v.SetDefault("logger.file.max_size_mb", 100)
	v.SetDefault("logger.file.max_backups", 3)
	v.SetDefault("logger.file.max_age_days", 28)
	v.SetDefault("logger.file.compress", true)

	// Email stays off until a host is configured.
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("rate_limit.rps", 100)
	v.SetDefault("rate_limit.burst", 200)
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

func (c *CacheConfig) ToStoreConfig() cache.Config {
	return cache.Config{
		TTL:             c.TTL,
		CleanupInterval: c.CleanupInterval,
		MaxEntries:      c.MaxEntries,
	}
}

func (c *OutboxConfig) ToProcessorConfig() worker.OutboxProcessorConfig {
	return worker.OutboxProcessorConfig{
		Channel:       c.Channel,
		BatchSize:     c.BatchSize,
		PollInterval:  c.PollInterval,
		RetryAttempts: c.RetryAttempts,
		RetryDelay:    c.RetryDelay,
		MaxRetries:    c.MaxRetries,
	}
}

func (c *CleanupConfig) ToWorkerConfig() internalworker.CleanupConfig {
	return internalworker.CleanupConfig{
		Schedule:              c.Schedule,
		OutboxRetention:       c.OutboxRetention,
		NotificationRetention: c.NotificationRetention,
	}
}
