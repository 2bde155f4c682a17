package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	LogLevel  string          `mapstructure:"log_level"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Port       int             `mapstructure:"port"`
	Debug      bool            `mapstructure:"debug"`
	CORS       bool            `mapstructure:"cors"`
	CORSOrigin string          `mapstructure:"cors_origin"`
	Limits     APILimitsConfig `mapstructure:"limits"`
}

// APILimitsConfig holds page-size limits for listing endpoints
type APILimitsConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// AuthConfig holds token issuance and password hashing settings.
// The JWT secret is read here once and handed to the token issuer at
// startup; nothing else reads it.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTIssuer     string `mapstructure:"jwt_issuer"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

// SchedulerConfig holds scheduled maintenance settings
type SchedulerConfig struct {
	TagStatsCron    string `mapstructure:"tag_stats_cron"`
	TagStatsEnabled bool   `mapstructure:"tag_stats_enabled"`
}

var globalConfig *Config

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("api.port", 8890)
	v.SetDefault("api.debug", false)
	v.SetDefault("api.cors", true)
	v.SetDefault("api.cors_origin", "*")
	v.SetDefault("api.limits.default_page_size", 10)
	v.SetDefault("api.limits.max_page_size", 100)
	v.SetDefault("auth.jwt_issuer", "filmlog")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("scheduler.tag_stats_cron", "0 * * * *")
	v.SetDefault("scheduler.tag_stats_enabled", true)
	v.SetDefault("log_level", "info")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set")
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}
