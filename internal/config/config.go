package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Exports   ExportsConfig   `mapstructure:"exports"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags set from the command line, not from the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
	// PublicOrigin is the externally visible base URL used when building
	// respondent and results share links, e.g. "https://pulse.example.com".
	PublicOrigin string `mapstructure:"public_origin"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type ExportsConfig struct {
	// Archive keeps a durable copy of every generated CSV export.
	Archive       bool   `mapstructure:"archive"`
	Type          string `mapstructure:"type"` // local, minio or oss
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EASY_PULSE")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.public_origin", "PUBLIC_ORIGIN")

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Exports
	viper.BindEnv("exports.archive", "EXPORTS_ARCHIVE")
	viper.BindEnv("exports.type", "EXPORTS_TYPE")
	viper.BindEnv("exports.local_path", "EXPORTS_LOCAL_PATH")
	viper.BindEnv("exports.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("exports.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("exports.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("exports.minio_bucket", "MINIO_BUCKET")
	viper.BindEnv("exports.oss_endpoint", "OSS_ENDPOINT")
	viper.BindEnv("exports.oss_access_key", "OSS_ACCESS_KEY")
	viper.BindEnv("exports.oss_secret_key", "OSS_SECRET_KEY")
	viper.BindEnv("exports.oss_bucket", "OSS_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.PublicOrigin == "" {
		return nil, fmt.Errorf("server.public_origin must be set, share links cannot be built without it")
	}
	cfg.Server.PublicOrigin = strings.TrimRight(cfg.Server.PublicOrigin, "/")

	if cfg.Exports.Archive && cfg.Exports.Type == "local" {
		if _, err := os.Stat(cfg.Exports.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Exports.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
