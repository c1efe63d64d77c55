package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"logistics/internal/adapters/out/postgres"
)

// Storage backends selectable with STORAGE.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

const (
	defaultHTTPPort              = "8080"
	defaultKafkaOrderEventsTopic = "order-events"
	defaultRedisAddr             = "localhost:6379"
)

var ErrConfigIsInvalid = errors.New("config is invalid")

type Config struct {
	HTTPPort  string
	LogLevel  string
	LogFormat string
	Storage   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KafkaBrokers is a comma separated list. Empty means events are only logged.
	KafkaBrokers          string
	KafkaOrderEventsTopic string

	OutboxRelaySchedule string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv,
// and fills in defaults for optional keys.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:              valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		LogLevel:              valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:             valueOr(getenv("LOG_FORMAT"), "json"),
		Storage:               strings.ToLower(valueOr(getenv("STORAGE"), StorageMemory)),
		DBHost:                getenv("DB_HOST"),
		DBPort:                getenv("DB_PORT"),
		DBUser:                getenv("DB_USER"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                getenv("DB_NAME"),
		DBSslMode:             getenv("DB_SSLMODE"),
		RedisAddr:             valueOr(getenv("REDIS_ADDR"), defaultRedisAddr),
		RedisPassword:         getenv("REDIS_PASSWORD"),
		KafkaBrokers:          getenv("KAFKA_BROKERS"),
		KafkaOrderEventsTopic: valueOr(getenv("KAFKA_ORDER_EVENTS_TOPIC"), defaultKafkaOrderEventsTopic),
		OutboxRelaySchedule:   getenv("OUTBOX_RELAY_SCHEDULE"),
	}

	if raw := getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("%w: REDIS_DB must be a non-negative integer, got %q", ErrConfigIsInvalid, raw)
		}
		config.RedisDB = db
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if _, err := c.PostgresOptions().DSN(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown STORAGE %q", ErrConfigIsInvalid, c.Storage))
	}

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("%w: HTTP_PORT %q is not a port", ErrConfigIsInvalid, c.HTTPPort))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("%w: LOG_FORMAT must be json or text, got %q", ErrConfigIsInvalid, c.LogFormat))
	}

	return errors.Join(errs...)
}

func (c Config) PostgresOptions() postgres.Options {
	return postgres.Options{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// SlogLevel parses LogLevel as debug, info, warn or error.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL %q", ErrConfigIsInvalid, c.LogLevel)
	}
	return level, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
