package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Business  BusinessConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SchedulerConfig struct {
	// RefreshSpec is a six-field cron expression for the dues refresh job.
	RefreshSpec string
	Timezone    string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type BusinessConfig struct {
	DailyPenaltyRate string
	DelayPolicy      string
	FixedDaysDelayed int64
	CacheTTL         time.Duration
}

type HealthConfig struct {
	Timeout time.Duration
}

// Delay policy names accepted by BUSINESS_DELAY_POLICY.
const (
	DelayPolicyFixed    = "fixed"
	DelayPolicyCalendar = "calendar"
)

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("DAILY_PENALTY_RATE", "10.00")
	viper.SetDefault("BUSINESS_DELAY_POLICY", DelayPolicyFixed)
	viper.SetDefault("FIXED_DAYS_DELAYED", 5)
	viper.SetDefault("EMI_CACHE_TTL", "15m")
	viper.SetDefault("SCHEDULER_REFRESH_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	config := Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:          viper.GetString("DATABASE_URL"),
			MaxOpenConns: viper.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns: viper.GetInt("DATABASE_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Scheduler: SchedulerConfig{
			RefreshSpec: viper.GetString("SCHEDULER_REFRESH_SPEC"),
			Timezone:    viper.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Business: BusinessConfig{
			DailyPenaltyRate: viper.GetString("DAILY_PENALTY_RATE"),
			DelayPolicy:      viper.GetString("BUSINESS_DELAY_POLICY"),
			FixedDaysDelayed: viper.GetInt64("FIXED_DAYS_DELAYED"),
			CacheTTL:         viper.GetDuration("EMI_CACHE_TTL"),
		},
		Health: HealthConfig{
			Timeout: viper.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.FixedDaysDelayed < 0 {
		return fmt.Errorf("FIXED_DAYS_DELAYED must not be negative")
	}

	if c.Business.DelayPolicy != DelayPolicyFixed && c.Business.DelayPolicy != DelayPolicyCalendar {
		return fmt.Errorf("BUSINESS_DELAY_POLICY must be %q or %q", DelayPolicyFixed, DelayPolicyCalendar)
	}

	rate, err := decimal.NewFromString(c.Business.DailyPenaltyRate)
	if err != nil {
		return fmt.Errorf("DAILY_PENALTY_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("DAILY_PENALTY_RATE must not be negative")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDailyPenaltyRate returns the per-day penalty rate as decimal
func (c *Config) GetDailyPenaltyRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DailyPenaltyRate)
	return rate
}

// RedisAddr returns the redis host:port address
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}
