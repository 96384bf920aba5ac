package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Rate source variants.
const (
	RateSourceSimulated = "simulated"
	RateSourceLive      = "live"
)

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int
	ConnectTimeout time.Duration
	MigrationsPath string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether domain events should go to Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type RateConfig struct {
	Source  string
	FeedURL string
	Seed    int64
	Timeout time.Duration
}

type RedisConfig struct {
	Addr string
}

type RateLimitConfig struct {
	// RequestsPerMinute per client IP; zero disables limiting.
	RequestsPerMinute int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	GRPCPort           int
	GRPCReflection     bool
	HTTPPort           int
	DB                 DatabaseConfig
	Kafka              KafkaConfig
	Rates              RateConfig
	Redis              RedisConfig
	RateLimit          RateLimitConfig
	Tracing            TracingConfig
	Log                LogConfig
	CORSAllowedOrigins []string
	ServiceName        string
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT %d out of range", c.GRPCPort))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, errors.New("HTTP_PORT and GRPC_PORT must differ"))
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	switch c.Rates.Source {
	case RateSourceSimulated:
	case RateSourceLive:
		if c.Rates.FeedURL == "" {
			errs = append(errs, errors.New("RATE_FEED_URL is required when RATE_SOURCE=live"))
		}
	default:
		errs = append(errs, fmt.Errorf("RATE_SOURCE %q must be %q or %q",
			c.Rates.Source, RateSourceSimulated, RateSourceLive))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(errs...)
}

func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		HTTPPort:       getEnvInt("HTTP_PORT", 5000),
		DB: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "truecost"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "truecost"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvInt("DB_MAX_CONNS", 10),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "file://internal/infrastructure/postgres/migrations"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "truecost-events"),
		},
		Rates: RateConfig{
			Source:  strings.ToLower(getEnv("RATE_SOURCE", RateSourceSimulated)),
			FeedURL: getEnv("RATE_FEED_URL", ""),
			Seed:    int64(getEnvInt("RATE_SEED", 0)),
			Timeout: getEnvDuration("RATE_FEED_TIMEOUT", 3*time.Second),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvInt("RATE_LIMIT", 120),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvBool("TRACING_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ServiceName:        "truecost-mortgage-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
