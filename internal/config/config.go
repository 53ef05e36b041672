package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	AI        AIConfig
	Quiz      QuizConfig
	Analytics AnalyticsConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Set from command line flags, not the config file.
	ForceMigrate bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string `mapstructure:"sslmode"`
	Charset  string
}

// AuthConfig holds the verification secret of the external auth provider.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	Bucket        string `mapstructure:"bucket"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	SupabaseURL   string `mapstructure:"supabase_url"`
	SupabaseKey   string `mapstructure:"supabase_key"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SampleRatio       float64 `mapstructure:"sample_ratio"`
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       int
	Password   string
	DB         int
	// TTLSeconds bounds how long a catalog listing lives. Writes move the catalog to a new
	// generation, so listings written for an older generation are never read and only
	// occupy memory until this TTL.
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type AIConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// QuizConfig selects how a quiz's total points are split across its questions.
type QuizConfig struct {
	PointsRemainder string `mapstructure:"points_remainder"`
}

type AnalyticsConfig struct {
	BucketMode string `mapstructure:"bucket_mode"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "require")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.bucket", "resources")
	v.SetDefault("storage.local_path", "uploads")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.ttl_seconds", 60)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("quiz.points_remainder", "floor")
	v.SetDefault("analytics.bucket_mode", "observed")
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("tracing.sample_ratio", 1.0)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("EDUTRACK")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Auth provider
	v.BindEnv("auth.jwt_secret", "SUPABASE_JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// AI
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key", "GEMINI_API_KEY")
	v.BindEnv("ai.model", "GEMINI_MODEL")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.bucket", "BUCKET_NAME")
	v.BindEnv("storage.supabase_url", "SUPABASE_URL")
	v.BindEnv("storage.supabase_key", "SUPABASE_KEY")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")
	v.BindEnv("tracing.sample_ratio", "TRACING_SAMPLE_RATIO")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Quiz.PointsRemainder {
	case "floor", "distribute", "exact":
	default:
		return fmt.Errorf("quiz.points_remainder must be floor, distribute or exact, got %q", c.Quiz.PointsRemainder)
	}

	switch c.Analytics.BucketMode {
	case "uniform", "observed":
	default:
		return fmt.Errorf("analytics.bucket_mode must be uniform or observed, got %q", c.Analytics.BucketMode)
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit.max_requests and rate_limit.window_minutes must be positive")
	}

	if c.Server.Mode == "release" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.Auth.JWTSecret))
	}
	return nil
}
