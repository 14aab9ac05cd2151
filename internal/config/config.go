package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the analytics service
type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Auth  AuthConfig  `mapstructure:"auth"`
	JWT   JWTConfig   `mapstructure:"jwt"`
	Redis RedisConfig `mapstructure:"redis"`
	NATS  NATSConfig  `mapstructure:"nats"`
	Data  DataConfig  `mapstructure:"data"`
	CORS  CORSConfig  `mapstructure:"cors"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// AuthConfig holds the auth toggle and the demo account passwords
type AuthConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AdminPassword string `mapstructure:"admin_password"`
	DemoPassword  string `mapstructure:"demo_password"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// RedisConfig holds the forecast cache configuration. An empty host
// disables caching.
type RedisConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
}

// NATSConfig holds NATS configuration. An empty URL disables event
// publishing.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// DataConfig holds the CSV input paths
type DataConfig struct {
	DailyPath  string `mapstructure:"daily_path"`
	WeeklyPath string `mapstructure:"weekly_path"`
}

// CORSConfig holds allowed origins as a comma-separated list
type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	_ = v.BindEnv("auth.enabled", "AUTH_ENABLED")
	_ = v.BindEnv("auth.admin_password", "AUTH_ADMIN_PASSWORD")
	_ = v.BindEnv("auth.demo_password", "AUTH_DEMO_PASSWORD")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.ttl_hours", "JWT_TTL_HOURS")

	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("redis.cache_ttl_minutes", "REDIS_CACHE_TTL_MINUTES")

	_ = v.BindEnv("nats.url", "NATS_URL")

	_ = v.BindEnv("data.daily_path", "DATA_DAILY_PATH")
	_ = v.BindEnv("data.weekly_path", "DATA_WEEKLY_PATH")

	_ = v.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-analytics")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")

	// Auth
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.demo_password", "")

	// JWT
	v.SetDefault("jwt.secret", "change-this-in-production")
	v.SetDefault("jwt.ttl_hours", 24)

	// Redis (empty host = cache disabled)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl_minutes", 10)

	// NATS (empty URL = events disabled)
	v.SetDefault("nats.url", "")

	// Data
	v.SetDefault("data.daily_path", "data/daily_metrics.csv")
	v.SetDefault("data.weekly_path", "data/weekly_metrics.csv")

	// CORS
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:3001")
}
