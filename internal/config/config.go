// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Store backend selectors.
const (
	StoreRedis    = "redis"
	StoreDatabase = "database"
	StoreMemory   = "memory"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Storage
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	RedisURL     string `mapstructure:"REDIS_URL"`
	DBDriver     string `mapstructure:"DB_DRIVER"`
	DBPath       string `mapstructure:"DB_PATH"`
	DBHost       string `mapstructure:"DB_HOST"`
	DBPort       string `mapstructure:"DB_PORT"`
	DBUser       string `mapstructure:"DB_USER"`
	DBPassword   string `mapstructure:"DB_PASSWORD"`
	DBName       string `mapstructure:"DB_NAME"`
	DBSSLMode    string `mapstructure:"DB_SSLMODE"`

	// Verification workflow
	VerificationCode     string `mapstructure:"VERIFICATION_CODE"`
	SessionTTLMinutes    int    `mapstructure:"SESSION_TTL_MINUTES"`
	ProbeDurationSeconds int    `mapstructure:"PROBE_DURATION_SECONDS"`
	SeedOnStart          bool   `mapstructure:"SEED_ON_START"`

	// Avatar generation
	AvatarBaseURL string `mapstructure:"AVATAR_BASE_URL"`

	// Tracing
	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	SamplerRatio    float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Set default values for development
	viper.SetDefault("PORT", "8480")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("STORE_BACKEND", StoreRedis)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "connectsphere.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "connectsphere")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("VERIFICATION_CODE", "123456")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("PROBE_DURATION_SECONDS", 10)
	viper.SetDefault("SEED_ON_START", true)
	viper.SetDefault("AVATAR_BASE_URL", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet
// production expectations.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.StoreBackend {
	case StoreRedis, StoreDatabase, StoreMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of redis, database, memory (got %q)", c.StoreBackend)
	}

	if c.StoreBackend == StoreDatabase {
		switch c.DBDriver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("DB_DRIVER must be sqlite or postgres (got %q)", c.DBDriver)
		}
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	// Strict checks for production
	if isProduction {
		if c.StoreBackend == StoreMemory {
			return errors.New("STORE_BACKEND=memory loses all state on restart and is not allowed in production")
		}
		if c.VerificationCode != "" {
			return errors.New("VERIFICATION_CODE must be empty in production so codes are generated per session")
		}
		if c.StoreBackend == StoreDatabase && c.DBDriver == "postgres" {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if strings.TrimSpace(c.DBSSLMode) == "disable" || c.DBSSLMode == "" {
				log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
			}
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	if c.SessionTTLMinutes <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}

	return nil
}
